package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankledger/shared"
)

type TransactionKind string

const (
	DepositKind    TransactionKind = "Deposit"
	WithdrawalKind TransactionKind = "Withdrawal"
	InterestKind   TransactionKind = "Interest"
)

// Transaction is one immutable ledger entry. The sign of Amount encodes
// direction: deposits and interest are positive, withdrawals negative.
// Entries are created only by Account mutators, never by callers.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  shared.Currency `json:"currency"`
	Timestamp time.Time       `json:"timestamp"`
}

func newTransaction(kind TransactionKind, amount decimal.Decimal, currency shared.Currency) Transaction {
	return Transaction{
		ID:        uuid.New(),
		Kind:      kind,
		Amount:    amount,
		Currency:  currency,
		Timestamp: time.Now().UTC(),
	}
}

func (t Transaction) String() string {
	return fmt.Sprintf("[%s] %-10s %s%s %s",
		t.Timestamp.Format(time.RFC3339), t.Kind, t.Currency.Symbol, t.Amount.StringFixed(2), t.Currency.Code)
}
