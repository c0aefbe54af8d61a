package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"bankledger/auth"
)

var testSecret = []byte("test-secret-key")

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := auth.NewTokenIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	customerID := uuid.New()
	token, err := issuer.Issue(customerID)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got != customerID {
		t.Errorf("expected customer %s, got %s", customerID, got)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := auth.NewTokenIssuer(testSecret, time.Millisecond)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	token, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, err = issuer.Verify(token)
	if !errors.Is(err, auth.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenIssuer_Invalid(t *testing.T) {
	issuer, err := auth.NewTokenIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}

	t.Run("Garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		if !errors.Is(err, auth.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, err := auth.NewTokenIssuer([]byte("different-secret"), time.Hour)
		if err != nil {
			t.Fatalf("NewTokenIssuer failed: %v", err)
		}
		token, err := other.Issue(uuid.New())
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		_, err = issuer.Verify(token)
		if !errors.Is(err, auth.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("Tampered", func(t *testing.T) {
		token, err := issuer.Issue(uuid.New())
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		tampered := token[:len(token)-2] + "xx"
		_, err = issuer.Verify(tampered)
		if !errors.Is(err, auth.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	if _, err := auth.NewTokenIssuer(nil, time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := auth.NewTokenIssuer(testSecret, 0); err == nil {
		t.Error("expected error for zero ttl")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter2", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.CheckPassword("hunter2", hash) {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword("hunter3", hash) {
		t.Error("wrong password accepted")
	}

	// Hashes are salted: the same password never hashes identically.
	again, err := auth.HashPassword("hunter2", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == again {
		t.Error("expected salted hashes to differ")
	}
}
