package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bankledger/shared"
)

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency shared.Currency `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency shared.Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) Add(other Money) (Money, error) {
	if !m.Currency.Equal(other.Currency) {
		return Money{}, fmt.Errorf("currency mismatch: cannot add %s and %s", m.Currency, other.Currency)
	}
	return NewMoney(m.Amount.Add(other.Amount), m.Currency), nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if !m.Currency.Equal(other.Currency) {
		return Money{}, fmt.Errorf("currency mismatch: cannot subtract %s from %s", other.Currency, m.Currency)
	}
	return NewMoney(m.Amount.Sub(other.Amount), m.Currency), nil
}

// Convert produces the equivalent Money in the target currency at the
// given directional rate. The rate must already be for m.Currency->target.
func (m Money) Convert(rate decimal.Decimal, target shared.Currency) Money {
	if m.Currency.Equal(target) {
		return m
	}
	return NewMoney(m.Amount.Mul(rate), target)
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if !m.Currency.Equal(other.Currency) {
		return false, fmt.Errorf("currency mismatch: cannot compare %s and %s", m.Currency, other.Currency)
	}
	return m.Amount.GreaterThanOrEqual(other.Amount), nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s%s %s", m.Currency.Symbol, m.Amount.StringFixed(2), m.Currency.Code)
}
