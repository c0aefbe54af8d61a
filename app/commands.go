package app

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankledger/shared"
)

// --- Command Struct Definitions ---
// Commands represent the intent to perform an action or change state in the system.

type RegisterCustomerCommand struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type OpenAccountCommand struct {
	CustomerID     uuid.UUID
	Kind           shared.AccountKind
	CurrencyCode   string
	InitialBalance decimal.Decimal

	// InterestRate applies to savings accounts, OverdraftLimit to
	// checking accounts; the other field is ignored per kind.
	InterestRate   decimal.Decimal
	OverdraftLimit decimal.Decimal
}

type DepositCommand struct {
	AccountNumber string
	Amount        decimal.Decimal
}

type WithdrawCommand struct {
	AccountNumber string
	Amount        decimal.Decimal
}

type ApplyInterestCommand struct {
	AccountNumber string
}

type TransferCommand struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
}

// --- Query Structures (Input for Read Operations) ---

type AnalyticsQuery struct {
	CustomerID uuid.UUID
}

// Analytics is a derived, read-only view over a customer's accounts.
// TotalBalance sums balance magnitudes across accounts in different
// currencies without conversion; that is the documented behavior, not
// an oversight. AverageTransactionAmount is TotalBalance divided by
// TransactionCount, zero when the customer has no transactions.
type Analytics struct {
	TotalBalance             decimal.Decimal
	TransactionCount         int
	AverageTransactionAmount decimal.Decimal
}

// ConvertedAnalytics is the conversion-aware variant: every balance is
// converted into the target currency before summing.
type ConvertedAnalytics struct {
	Currency                 shared.Currency
	TotalBalance             decimal.Decimal
	TransactionCount         int
	AverageTransactionAmount decimal.Decimal
}
