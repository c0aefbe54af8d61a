package domain

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bankledger/auth"
)

// customerNamespace is the fixed UUIDv5 namespace for deriving customer
// identities from email addresses. Changing it would orphan every
// existing customer, so it never changes.
var customerNamespace = uuid.MustParse("7f1069d2-6c5b-4f4e-9a70-3f4b2f1e8c55")

// CustomerID derives the stable identity for an email address. The same
// email always maps to the same id.
func CustomerID(email string) uuid.UUID {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(customerNamespace, []byte(normalized))
}

// Customer owns a set of accounts keyed by account number. The account
// map is guarded by the customer's own mutex; the accounts themselves
// carry their own locks.
type Customer struct {
	mu sync.RWMutex

	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	passwordHash string
	accounts     map[string]*Account
}

func NewCustomer(name, email, phone, passwordHash string) (*Customer, error) {
	if email == "" {
		return nil, NewDomainError("customer email cannot be empty")
	}
	if passwordHash == "" {
		return nil, NewDomainError("customer password hash cannot be empty")
	}
	return &Customer{
		ID:           CustomerID(email),
		Name:         name,
		Email:        email,
		Phone:        phone,
		passwordHash: passwordHash,
		accounts:     make(map[string]*Account),
	}, nil
}

// AddAccount registers an account under its number.
func (c *Customer) AddAccount(a *Account) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.accounts[a.Number()]; exists {
		return fmt.Errorf("%w: %s already registered for customer %s", ErrDuplicateAccount, a.Number(), c.ID)
	}
	c.accounts[a.Number()] = a
	return nil
}

func (c *Customer) GetAccount(number string) (*Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.accounts[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s for customer %s", ErrAccountNotFound, number, c.ID)
	}
	return a, nil
}

// Accounts returns the customer's accounts ordered by account number.
func (c *Customer) Accounts() []*Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Account, 0, len(c.accounts))
	for _, a := range c.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// VerifyPassword checks a candidate password against the stored hash.
// Plaintext is never stored or logged.
func (c *Customer) VerifyPassword(candidate string) bool {
	return auth.CheckPassword(candidate, c.passwordHash)
}
