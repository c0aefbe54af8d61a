package domain

import "fmt"

type DomainError struct {
	message string
}

func NewDomainError(format string, args ...interface{}) *DomainError {
	return &DomainError{message: fmt.Sprintf(format, args...)}
}

func (e *DomainError) Error() string {
	return e.message
}

var (
	ErrInsufficientFunds    = NewDomainError("insufficient funds")
	ErrAccountNotFound      = NewDomainError("account not found")
	ErrDuplicateAccount     = NewDomainError("account already exists")
	ErrCustomerNotFound     = NewDomainError("customer not found")
	ErrCustomerExists       = NewDomainError("customer already exists")
	ErrInvalidCurrency      = NewDomainError("currency not recognized")
	ErrRateUnavailable      = NewDomainError("exchange rate unavailable")
	ErrInvalidAccountType   = NewDomainError("invalid account type")
	ErrAuthenticationFailed = NewDomainError("authentication failed")
)
