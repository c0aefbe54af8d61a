package shared

import "github.com/shopspring/decimal"

// Currency describes a currency recognized by the bank. Two currencies
// are the same iff their codes match; name and symbol are display-only.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func (c Currency) Equal(other Currency) bool {
	return c.Code == other.Code
}

func (c Currency) String() string {
	return c.Code
}

var (
	USD = Currency{Code: "USD", Name: "US Dollar", Symbol: "$"}
	EUR = Currency{Code: "EUR", Name: "Euro", Symbol: "€"}
	GBP = Currency{Code: "GBP", Name: "Pound Sterling", Symbol: "£"}
)

// AccountKind tags the account variant. The set is closed: the
// withdrawal floor is the only behavior that varies between kinds.
type AccountKind string

const (
	Savings  AccountKind = "savings"
	Checking AccountKind = "checking"
)

func (k AccountKind) Valid() bool {
	return k == Savings || k == Checking
}

type Balance struct {
	Currency Currency        `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}
