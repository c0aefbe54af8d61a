package rates

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"bankledger/domain"
	"bankledger/shared"
)

// Entry is one directional rate observation.
type Entry struct {
	Rate       decimal.Decimal
	ObservedAt time.Time
}

type pair struct {
	from, to string
}

// Table holds directional exchange rates keyed by (from, to) currency
// code. Rates are never derived: a missing pair is a hard failure even
// when the inverse pair is present.
type Table struct {
	mu      sync.RWMutex
	entries map[pair]Entry
}

func NewTable() *Table {
	return &Table{entries: make(map[pair]Entry)}
}

// Rate returns the stored directional rate for from -> to. The identity
// pair always resolves to 1 without a lookup.
func (t *Table) Rate(from, to shared.Currency) (decimal.Decimal, error) {
	if from.Equal(to) {
		return decimal.NewFromInt(1), nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[pair{from: from.Code, to: to.Code}]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s -> %s", domain.ErrRateUnavailable, from, to)
	}
	return entry.Rate, nil
}

// Lookup returns the full entry, including when the rate was observed.
func (t *Table) Lookup(from, to shared.Currency) (Entry, error) {
	if from.Equal(to) {
		return Entry{Rate: decimal.NewFromInt(1), ObservedAt: time.Now().UTC()}, nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[pair{from: from.Code, to: to.Code}]
	if !ok {
		return Entry{}, fmt.Errorf("%w: no rate for %s -> %s", domain.ErrRateUnavailable, from, to)
	}
	return entry, nil
}

// Set upserts a single directional rate.
func (t *Table) Set(from, to shared.Currency, rate decimal.Decimal) error {
	if from.Equal(to) {
		return fmt.Errorf("cannot set a rate for %s against itself", from)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("rate for %s -> %s must be positive, got %s", from, to, rate)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[pair{from: from.Code, to: to.Code}] = Entry{Rate: rate, ObservedAt: time.Now().UTC()}
	return nil
}

// Refresh replaces every entry based on base with fresh rates from the
// source. Only currencies the caller recognizes are admitted. The fetch
// runs without any table lock held; the swap of the base's row is
// all-or-nothing: a failed fetch or an invalid rate leaves the table
// exactly as it was.
func (t *Table) Refresh(ctx context.Context, source Source, base shared.Currency, recognized func(code string) bool) error {
	fetched, err := source.FetchRates(ctx, base)
	if err != nil {
		return fmt.Errorf("%w: refresh for base %s failed: %v", domain.ErrRateUnavailable, base, err)
	}

	observed := time.Now().UTC()
	row := make(map[pair]Entry, len(fetched))
	for code, rate := range fetched {
		if code == base.Code || !recognized(code) {
			continue
		}
		if !rate.IsPositive() {
			return fmt.Errorf("%w: source returned non-positive rate %s for %s -> %s",
				domain.ErrRateUnavailable, rate, base, code)
		}
		row[pair{from: base.Code, to: code}] = Entry{Rate: rate, ObservedAt: observed}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for p := range t.entries {
		if p.from == base.Code {
			delete(t.entries, p)
		}
	}
	for p, entry := range row {
		t.entries[p] = entry
	}
	return nil
}

// Len reports how many directional pairs the table currently holds.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
