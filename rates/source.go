package rates

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bankledger/shared"
)

// Source is the external rate-fetch capability. Implementations are
// expected to honor ctx deadlines; a slow or failing source must never
// block ledger operations, so callers fetch outside any account lock.
type Source interface {
	FetchRates(ctx context.Context, base shared.Currency) (map[string]decimal.Decimal, error)
}

// StaticSource serves a fixed in-memory rate sheet. It stands in for a
// real market-data client in tests and the demo driver.
type StaticSource struct {
	sheet map[string]map[string]string
}

func NewStaticSource() *StaticSource {
	return &StaticSource{
		sheet: map[string]map[string]string{
			"USD": {"EUR": "0.92", "GBP": "0.80"},
			"EUR": {"USD": "1.08", "GBP": "0.87"},
			"GBP": {"USD": "1.25", "EUR": "1.15"},
		},
	}
}

func (s *StaticSource) FetchRates(ctx context.Context, base shared.Currency) (map[string]decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, ok := s.sheet[base.Code]
	if !ok {
		return nil, fmt.Errorf("no rates published for base %s", base)
	}
	out := make(map[string]decimal.Decimal, len(row))
	for code, raw := range row {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("bad rate %q for %s -> %s: %w", raw, base, code, err)
		}
		out[code] = rate
	}
	return out, nil
}
