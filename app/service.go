package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankledger/auth"
	"bankledger/domain"
	"bankledger/rates"
	"bankledger/shared"
)

const accountNumberAttempts = 5

// BankService is the single authority over the ledger: it owns the
// customer registry, the recognized-currency set, the bank-wide account
// index, and the exchange-rate table, and it drives the transfer
// protocol. It holds no balances itself; accounts do.
type BankService struct {
	mu         sync.RWMutex
	customers  map[uuid.UUID]*domain.Customer
	currencies map[string]shared.Currency
	accounts   map[string]*domain.Account

	rateTable  *rates.Table
	tokens     *auth.TokenIssuer
	bcryptCost int
}

func NewBankService(table *rates.Table, tokens *auth.TokenIssuer, bcryptCost int) *BankService {
	if table == nil || tokens == nil {
		log.Fatal("FATAL: rate table and token issuer must not be nil")
	}
	return &BankService{
		customers:  make(map[uuid.UUID]*domain.Customer),
		currencies: make(map[string]shared.Currency),
		accounts:   make(map[string]*domain.Account),
		rateTable:  table,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// AddCurrency registers a currency with the bank. Re-adding an existing
// code overwrites name and symbol; the operation is an idempotent upsert.
func (s *BankService) AddCurrency(code, name, symbol string) shared.Currency {
	currency := shared.Currency{Code: strings.ToUpper(code), Name: name, Symbol: symbol}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currencies[currency.Code] = currency
	return currency
}

// Currency resolves a recognized currency by code.
func (s *BankService) Currency(code string) (shared.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	currency, ok := s.currencies[strings.ToUpper(code)]
	if !ok {
		return shared.Currency{}, fmt.Errorf("%w: %s", domain.ErrInvalidCurrency, code)
	}
	return currency, nil
}

// RegisterCustomer onboards a new customer. The identity is derived
// from the email, so registering the same email twice fails.
func (s *BankService) RegisterCustomer(cmd RegisterCustomerCommand) (uuid.UUID, error) {
	if cmd.Email == "" {
		return uuid.Nil, domain.NewDomainError("email cannot be empty")
	}
	if cmd.Password == "" {
		return uuid.Nil, domain.NewDomainError("password cannot be empty")
	}

	hash, err := auth.HashPassword(cmd.Password, s.bcryptCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to register customer %s: %w", cmd.Email, err)
	}
	customer, err := domain.NewCustomer(cmd.Name, cmd.Email, cmd.Phone, hash)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to register customer %s: %w", cmd.Email, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.ID]; exists {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrCustomerExists, cmd.Email)
	}
	s.customers[customer.ID] = customer
	log.Printf("Customer %s registered (id %s)", cmd.Email, customer.ID)
	return customer.ID, nil
}

// Customer resolves a customer by derived identity.
func (s *BankService) Customer(id uuid.UUID) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, id)
	}
	return customer, nil
}

// OpenAccount creates an account for a customer and registers it under
// a fresh bank-unique account number.
func (s *BankService) OpenAccount(cmd OpenAccountCommand) (string, error) {
	if !cmd.Kind.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidAccountType, cmd.Kind)
	}
	customer, err := s.Customer(cmd.CustomerID)
	if err != nil {
		return "", err
	}
	currency, err := s.Currency(cmd.CurrencyCode)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	number, err := s.newAccountNumberLocked()
	if err != nil {
		return "", err
	}

	var account *domain.Account
	switch cmd.Kind {
	case shared.Savings:
		account, err = domain.NewSavingsAccount(number, currency, cmd.InterestRate, cmd.InitialBalance)
	case shared.Checking:
		account, err = domain.NewCheckingAccount(number, currency, cmd.OverdraftLimit, cmd.InitialBalance)
	}
	if err != nil {
		return "", fmt.Errorf("failed to open %s account for customer %s: %w", cmd.Kind, cmd.CustomerID, err)
	}

	if err := customer.AddAccount(account); err != nil {
		return "", err
	}
	s.accounts[number] = account
	log.Printf("Opened %s account %s (%s) for customer %s", cmd.Kind, number, currency.Code, cmd.CustomerID)
	return number, nil
}

// newAccountNumberLocked allocates a number unique across the bank.
// A generation collision is retryable, not fatal.
func (s *BankService) newAccountNumberLocked() (string, error) {
	for i := 0; i < accountNumberAttempts; i++ {
		candidate := "ACC-" + strings.ToUpper(uuid.NewString()[:12])
		if _, taken := s.accounts[candidate]; !taken {
			return candidate, nil
		}
		log.Printf("Account number collision on %s, retrying (%d/%d)", candidate, i+1, accountNumberAttempts)
	}
	return "", fmt.Errorf("could not allocate a unique account number after %d attempts", accountNumberAttempts)
}

// Account resolves an account by number through the bank-wide index.
func (s *BankService) Account(number string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, number)
	}
	return account, nil
}

func (s *BankService) Deposit(cmd DepositCommand) error {
	account, err := s.Account(cmd.AccountNumber)
	if err != nil {
		return err
	}
	if err := account.Deposit(cmd.Amount); err != nil {
		return fmt.Errorf("deposit to %s failed: %w", cmd.AccountNumber, err)
	}
	log.Printf("Deposit of %s %s to account %s", cmd.Amount, account.Currency(), cmd.AccountNumber)
	return nil
}

func (s *BankService) Withdraw(cmd WithdrawCommand) error {
	account, err := s.Account(cmd.AccountNumber)
	if err != nil {
		return err
	}
	if err := account.Withdraw(cmd.Amount); err != nil {
		return err
	}
	log.Printf("Withdrawal of %s %s from account %s", cmd.Amount, account.Currency(), cmd.AccountNumber)
	return nil
}

func (s *BankService) ApplyInterest(cmd ApplyInterestCommand) (decimal.Decimal, error) {
	account, err := s.Account(cmd.AccountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	interest, err := account.ApplyInterest()
	if err != nil {
		return decimal.Zero, err
	}
	log.Printf("Interest of %s %s credited to account %s", interest, account.Currency(), cmd.AccountNumber)
	return interest, nil
}

// Transfer atomically moves cmd.Amount from the source account to the
// destination, converting when the currencies differ. The rate is
// resolved before any account lock is taken; rate failures abort the
// transfer with no mutation on either side.
func (s *BankService) Transfer(cmd TransferCommand) error {
	src, err := s.Account(cmd.FromAccount)
	if err != nil {
		return err
	}
	dst, err := s.Account(cmd.ToAccount)
	if err != nil {
		return err
	}

	rate := decimal.NewFromInt(1)
	if !src.Currency().Equal(dst.Currency()) {
		rate, err = s.rateTable.Rate(src.Currency(), dst.Currency())
		if err != nil {
			return fmt.Errorf("transfer %s -> %s aborted: %w", cmd.FromAccount, cmd.ToAccount, err)
		}
	}

	credited, err := domain.Transfer(src, dst, cmd.Amount, rate)
	if err != nil {
		return fmt.Errorf("transfer %s -> %s failed: %w", cmd.FromAccount, cmd.ToAccount, err)
	}
	log.Printf("Transferred %s %s from %s to %s (credited %s, rate %s)",
		cmd.Amount, src.Currency(), cmd.FromAccount, cmd.ToAccount, credited, rate)
	return nil
}

// GenerateAnalytics computes the aggregate view over a customer's
// accounts. Balances in different currencies are summed by magnitude
// without conversion; see Analytics.
func (s *BankService) GenerateAnalytics(query AnalyticsQuery) (Analytics, error) {
	customer, err := s.Customer(query.CustomerID)
	if err != nil {
		return Analytics{}, err
	}

	total := decimal.Zero
	count := 0
	for _, account := range customer.Accounts() {
		ledger := account.Ledger()
		count += len(ledger)
		sum := decimal.Zero
		for _, tx := range ledger {
			sum = sum.Add(tx.Amount)
		}
		total = total.Add(sum)
	}

	average := decimal.Zero
	if count > 0 {
		average = total.DivRound(decimal.NewFromInt(int64(count)), 8)
	}
	return Analytics{
		TotalBalance:             total,
		TransactionCount:         count,
		AverageTransactionAmount: average,
	}, nil
}

// GenerateConvertedAnalytics converts every balance into the target
// currency before summing. It fails with ErrRateUnavailable if any of
// the customer's holdings cannot be converted.
func (s *BankService) GenerateConvertedAnalytics(query AnalyticsQuery, targetCode string) (ConvertedAnalytics, error) {
	target, err := s.Currency(targetCode)
	if err != nil {
		return ConvertedAnalytics{}, err
	}
	customer, err := s.Customer(query.CustomerID)
	if err != nil {
		return ConvertedAnalytics{}, err
	}

	total := decimal.Zero
	count := 0
	for _, account := range customer.Accounts() {
		rate, err := s.rateTable.Rate(account.Currency(), target)
		if err != nil {
			return ConvertedAnalytics{}, fmt.Errorf("analytics for %s: %w", query.CustomerID, err)
		}
		total = total.Add(account.Balance().Mul(rate))
		count += len(account.Ledger())
	}

	average := decimal.Zero
	if count > 0 {
		average = total.DivRound(decimal.NewFromInt(int64(count)), 8)
	}
	return ConvertedAnalytics{
		Currency:                 target,
		TotalBalance:             total,
		TransactionCount:         count,
		AverageTransactionAmount: average,
	}, nil
}

// Statement renders the ledger of an account.
func (s *BankService) Statement(accountNumber string) (string, error) {
	account, err := s.Account(accountNumber)
	if err != nil {
		return "", err
	}
	return account.Statement(), nil
}

// Login verifies credentials and issues a signed, time-limited token.
// Every credential failure collapses to ErrAuthenticationFailed so a
// caller cannot probe which emails are registered.
func (s *BankService) Login(email, password string) (string, error) {
	id := domain.CustomerID(email)
	s.mu.RLock()
	customer, ok := s.customers[id]
	s.mu.RUnlock()
	if !ok || !customer.VerifyPassword(password) {
		return "", fmt.Errorf("%w: bad credentials for %s", domain.ErrAuthenticationFailed, email)
	}

	token, err := s.tokens.Issue(id)
	if err != nil {
		return "", fmt.Errorf("%w: token issuance for %s: %v", domain.ErrAuthenticationFailed, email, err)
	}
	log.Printf("Customer %s logged in", id)
	return token, nil
}

// Authenticate verifies a token back into the customer identity it was
// issued for. Expired or malformed tokens, and tokens for customers the
// bank no longer knows, all fail with ErrAuthenticationFailed.
func (s *BankService) Authenticate(token string) (uuid.UUID, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrAuthenticationFailed, err)
	}
	if _, err := s.Customer(id); err != nil {
		return uuid.Nil, fmt.Errorf("%w: unknown customer %s", domain.ErrAuthenticationFailed, id)
	}
	return id, nil
}

// RefreshRates updates the exchange-rate table from the source for one
// base currency. The fetch is bounded by timeout and runs with no
// ledger lock held; its failure never corrupts the table or blocks any
// account mutation.
func (s *BankService) RefreshRates(ctx context.Context, source rates.Source, baseCode string, timeout time.Duration) error {
	base, err := s.Currency(baseCode)
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	recognized := func(code string) bool {
		_, err := s.Currency(code)
		return err == nil
	}
	if err := s.rateTable.Refresh(ctx, source, base, recognized); err != nil {
		return err
	}
	log.Printf("Refreshed exchange rates for base %s", base)
	return nil
}

// SetRate upserts a single directional rate, for operators and tests.
func (s *BankService) SetRate(fromCode, toCode string, rate decimal.Decimal) error {
	from, err := s.Currency(fromCode)
	if err != nil {
		return err
	}
	to, err := s.Currency(toCode)
	if err != nil {
		return err
	}
	return s.rateTable.Set(from, to, rate)
}
