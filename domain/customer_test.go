package domain_test

import (
	"errors"
	"testing"

	"bankledger/auth"
	"bankledger/domain"
	"bankledger/shared"
)

func newCustomer(t *testing.T, email, password string) *domain.Customer {
	t.Helper()
	hash, err := auth.HashPassword(password, 4) // min cost keeps tests fast
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	c, err := domain.NewCustomer("Test Customer", email, "+1-555-0100", hash)
	if err != nil {
		t.Fatalf("NewCustomer failed: %v", err)
	}
	return c
}

func TestCustomerID(t *testing.T) {
	t.Run("DeterministicForSameEmail", func(t *testing.T) {
		a := domain.CustomerID("alice@example.com")
		b := domain.CustomerID("alice@example.com")
		if a != b {
			t.Errorf("same email produced different ids: %s vs %s", a, b)
		}
	})

	t.Run("NormalizesCaseAndWhitespace", func(t *testing.T) {
		a := domain.CustomerID("alice@example.com")
		b := domain.CustomerID("  Alice@Example.COM ")
		if a != b {
			t.Errorf("normalized forms of the same email diverged: %s vs %s", a, b)
		}
	})

	t.Run("DistinctEmailsDistinctIDs", func(t *testing.T) {
		if domain.CustomerID("alice@example.com") == domain.CustomerID("bob@example.com") {
			t.Error("different emails collided")
		}
	})
}

func TestCustomer_Accounts(t *testing.T) {
	c := newCustomer(t, "alice@example.com", "secret-password")

	a1, err := domain.NewSavingsAccount("ACC-1", shared.USD, dec("0.01"), dec("100"))
	if err != nil {
		t.Fatalf("NewSavingsAccount failed: %v", err)
	}
	a2, err := domain.NewCheckingAccount("ACC-2", shared.EUR, dec("50"), dec("200"))
	if err != nil {
		t.Fatalf("NewCheckingAccount failed: %v", err)
	}

	t.Run("AddAndGet", func(t *testing.T) {
		if err := c.AddAccount(a1); err != nil {
			t.Fatalf("AddAccount failed: %v", err)
		}
		if err := c.AddAccount(a2); err != nil {
			t.Fatalf("AddAccount failed: %v", err)
		}
		got, err := c.GetAccount("ACC-1")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if got.Number() != "ACC-1" {
			t.Errorf("expected ACC-1, got %s", got.Number())
		}
	})

	t.Run("DuplicateNumberFails", func(t *testing.T) {
		err := c.AddAccount(a1)
		if !errors.Is(err, domain.ErrDuplicateAccount) {
			t.Errorf("expected ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("UnknownNumberFails", func(t *testing.T) {
		_, err := c.GetAccount("ACC-404")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("AccountsOrderedByNumber", func(t *testing.T) {
		accounts := c.Accounts()
		if len(accounts) != 2 {
			t.Fatalf("expected 2 accounts, got %d", len(accounts))
		}
		if accounts[0].Number() != "ACC-1" || accounts[1].Number() != "ACC-2" {
			t.Errorf("accounts not ordered by number: %s, %s", accounts[0].Number(), accounts[1].Number())
		}
	})
}

func TestCustomer_VerifyPassword(t *testing.T) {
	c := newCustomer(t, "alice@example.com", "secret-password")

	if !c.VerifyPassword("secret-password") {
		t.Error("correct password rejected")
	}
	if c.VerifyPassword("wrong-password") {
		t.Error("wrong password accepted")
	}
	if c.VerifyPassword("") {
		t.Error("empty password accepted")
	}
}

func TestNewCustomer_Validation(t *testing.T) {
	var domainErr *domain.DomainError

	_, err := domain.NewCustomer("No Email", "", "", "some-hash")
	if !errors.As(err, &domainErr) {
		t.Errorf("expected DomainError for empty email, got %v", err)
	}

	_, err = domain.NewCustomer("No Hash", "x@example.com", "", "")
	if !errors.As(err, &domainErr) {
		t.Errorf("expected DomainError for empty hash, got %v", err)
	}
}
