package domain

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"bankledger/shared"
)

// Account is the unit of contention in the ledger: every mutation and
// every snapshot read happens under the account's own mutex. The kind
// tag is closed over {savings, checking}; the two variants share all
// logic and differ only in the withdrawal floor carried as a policy
// value (zero for savings, -overdraftLimit for checking).
//
// The ledger is the source of truth: balance is a cached fold of the
// ledger, and every mutation goes through apply so the two can never
// diverge.
type Account struct {
	mu sync.Mutex

	number   string
	kind     shared.AccountKind
	currency shared.Currency
	balance  decimal.Decimal
	ledger   []Transaction

	floor        decimal.Decimal
	interestRate decimal.Decimal
}

func NewSavingsAccount(number string, currency shared.Currency, interestRate, initialBalance decimal.Decimal) (*Account, error) {
	if interestRate.IsNegative() {
		return nil, NewDomainError("interest rate cannot be negative: %s", interestRate)
	}
	return newAccount(number, shared.Savings, currency, decimal.Zero, interestRate, initialBalance)
}

func NewCheckingAccount(number string, currency shared.Currency, overdraftLimit, initialBalance decimal.Decimal) (*Account, error) {
	if overdraftLimit.IsNegative() {
		return nil, NewDomainError("overdraft limit cannot be negative: %s", overdraftLimit)
	}
	return newAccount(number, shared.Checking, currency, overdraftLimit.Neg(), decimal.Zero, initialBalance)
}

func newAccount(number string, kind shared.AccountKind, currency shared.Currency, floor, interestRate, initialBalance decimal.Decimal) (*Account, error) {
	if number == "" {
		return nil, NewDomainError("account number cannot be empty")
	}
	if initialBalance.LessThan(floor) {
		return nil, fmt.Errorf("%w: initial balance %s below floor %s for %s account %s",
			ErrInsufficientFunds, initialBalance, floor, kind, number)
	}
	a := &Account{
		number:       number,
		kind:         kind,
		currency:     currency,
		balance:      decimal.Zero,
		floor:        floor,
		interestRate: interestRate,
	}
	if initialBalance.IsPositive() {
		a.apply(DepositKind, initialBalance)
	} else if initialBalance.IsNegative() {
		// Checking accounts may open inside their overdraft; the ledger
		// records the opening draw as a withdrawal to keep balance ==
		// sum(ledger).
		a.apply(WithdrawalKind, initialBalance)
	}
	return a, nil
}

// apply is the only code path that touches balance or ledger. Callers
// must hold a.mu (constructors excepted: the account is not yet shared).
func (a *Account) apply(kind TransactionKind, signedAmount decimal.Decimal) Transaction {
	tx := newTransaction(kind, signedAmount, a.currency)
	a.balance = a.balance.Add(signedAmount)
	a.ledger = append(a.ledger, tx)
	return tx
}

// Deposit increases the balance by amount. It never fails for a
// positive amount; there is no upper bound in this model.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewDomainError("deposit amount must be positive: %s", amount)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.apply(DepositKind, amount)
	return nil
}

// Withdraw decreases the balance by amount, failing with
// ErrInsufficientFunds when the result would drop below the variant's
// floor. Failure leaves balance and ledger untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewDomainError("withdrawal amount must be positive: %s", amount)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount)
}

func (a *Account) withdrawLocked(amount decimal.Decimal) error {
	if a.balance.Sub(amount).LessThan(a.floor) {
		return fmt.Errorf("%w: requested %s %s, available %s %s (floor %s) on account %s",
			ErrInsufficientFunds, amount, a.currency, a.balance, a.currency, a.floor, a.number)
	}
	a.apply(WithdrawalKind, amount.Neg())
	return nil
}

// ApplyInterest credits balance * interestRate and appends an Interest
// ledger entry. Savings accounts only.
func (a *Account) ApplyInterest() (decimal.Decimal, error) {
	if a.kind != shared.Savings {
		return decimal.Zero, fmt.Errorf("%w: interest does not apply to %s account %s",
			ErrInvalidAccountType, a.kind, a.number)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	interest := a.balance.Mul(a.interestRate)
	if interest.IsZero() {
		return decimal.Zero, nil
	}
	a.apply(InterestKind, interest)
	return interest, nil
}

// Balance returns the current balance as of now.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Ledger returns a point-in-time copy of the transaction history in
// chronological order.
func (a *Account) Ledger() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Transaction, len(a.ledger))
	copy(out, a.ledger)
	return out
}

// Statement renders the ledger and closing balance from a single
// consistent snapshot.
func (a *Account) Statement() string {
	a.mu.Lock()
	ledger := make([]Transaction, len(a.ledger))
	copy(ledger, a.ledger)
	balance := a.balance
	a.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Statement for %s account %s (%s)\n", a.kind, a.number, a.currency.Code)
	for i, tx := range ledger {
		fmt.Fprintf(&b, "%4d. %s\n", i+1, tx)
	}
	fmt.Fprintf(&b, "Balance: %s%s %s\n", a.currency.Symbol, balance.StringFixed(2), a.currency.Code)
	return b.String()
}

func (a *Account) Number() string            { return a.number }
func (a *Account) Kind() shared.AccountKind  { return a.kind }
func (a *Account) Currency() shared.Currency { return a.currency }

// Floor is the lowest balance a withdrawal may leave behind.
func (a *Account) Floor() decimal.Decimal { return a.floor }

func (a *Account) InterestRate() decimal.Decimal { return a.interestRate }

// Transfer atomically moves value from src to dst: amount leaves src in
// its own currency and amount*rate arrives at dst in the destination
// currency. Both locks are held for the whole critical section,
// acquired in account-number order so opposing concurrent transfers
// cannot deadlock. The caller resolves rate before calling; rate must
// be 1 when the currencies match.
//
// Either both legs happen or neither: everything that can fail is
// checked before the first mutation, and the deposit leg has no
// failure mode once the withdrawal has applied.
func Transfer(src, dst *Account, amount, rate decimal.Decimal) (Money, error) {
	if !amount.IsPositive() {
		return Money{}, NewDomainError("transfer amount must be positive: %s", amount)
	}
	if src.number == dst.number {
		return Money{}, NewDomainError("cannot transfer from account %s to itself", src.number)
	}
	if !rate.IsPositive() {
		return Money{}, fmt.Errorf("%w: non-positive rate %s for %s -> %s",
			ErrRateUnavailable, rate, src.currency, dst.currency)
	}
	if src.currency.Equal(dst.currency) && !rate.Equal(decimal.NewFromInt(1)) {
		return Money{}, NewDomainError("rate must be 1 for same-currency transfer (%s), got %s", src.currency, rate)
	}

	first, second := src, dst
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := src.withdrawLocked(amount); err != nil {
		return Money{}, err
	}
	credited := NewMoney(amount, src.currency).Convert(rate, dst.currency)
	dst.apply(DepositKind, credited.Amount)
	return credited, nil
}
