package stockfolio

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrZeroQuantity is returned when merging two lots would leave no quantity to
// average the purchase price over.
var ErrZeroQuantity = errors.New("merged quantity is zero")

// Portfolio is a named, ordered set of holdings, unique by symbol.
//
// Every mutation stamps LastUpdated from the portfolio's clock.
type Portfolio struct {
	name        string
	description string
	createdAt   time.Time
	lastUpdated time.Time
	holdings    []Holding
	clock       Clock
}

// NewPortfolio creates an empty portfolio. A nil clock means SystemClock.
func NewPortfolio(name, description string, clock Clock) *Portfolio {
	if clock == nil {
		clock = SystemClock
	}
	now := clock.Now()
	return &Portfolio{
		name:        name,
		description: description,
		createdAt:   now,
		lastUpdated: now,
		clock:       clock,
	}
}

func (p *Portfolio) Name() string           { return p.name }
func (p *Portfolio) Description() string    { return p.description }
func (p *Portfolio) CreatedAt() time.Time   { return p.createdAt }
func (p *Portfolio) LastUpdated() time.Time { return p.lastUpdated }
func (p *Portfolio) Len() int               { return len(p.holdings) }

// Holdings returns a copy of the holdings in insertion order.
func (p *Portfolio) Holdings() []Holding {
	return append([]Holding(nil), p.holdings...)
}

// Holding returns the holding for symbol.
func (p *Portfolio) Holding(symbol string) (Holding, bool) {
	if i := p.index(symbol); i >= 0 {
		return p.holdings[i], true
	}
	return Holding{}, false
}

func (p *Portfolio) SetName(name string) {
	p.name = name
	p.touch()
}

func (p *Portfolio) SetDescription(description string) {
	p.description = description
	p.touch()
}

// AddHolding appends h, or merges it into the existing holding with the same
// symbol.
//
// A merge sums the quantities and replaces the purchase price with the
// quantity-weighted average of both lots. The current price and name of the
// existing holding are kept. If the merged quantity would be zero, the
// portfolio is left untouched and ErrZeroQuantity is returned.
func (p *Portfolio) AddHolding(h Holding) error {
	i := p.index(h.Symbol)
	if i < 0 {
		p.holdings = append(p.holdings, h)
		p.touch()
		return nil
	}

	merged, err := merge(p.holdings[i], h)
	if err != nil {
		return fmt.Errorf("cannot add %s to %q: %w", h.Symbol, p.name, err)
	}
	now := p.now()
	merged.LastUpdated = now
	p.holdings[i] = merged
	p.lastUpdated = now
	return nil
}

// merge returns existing with lot averaged into it.
func merge(existing, lot Holding) (Holding, error) {
	eq := decimal.NewFromInt(int64(existing.Quantity))
	lq := decimal.NewFromInt(int64(lot.Quantity))
	total := eq.Add(lq)
	if total.IsZero() {
		return Holding{}, ErrZeroQuantity
	}

	cost := eq.Mul(decimal.NewFromFloat(existing.PurchasePrice)).
		Add(lq.Mul(decimal.NewFromFloat(lot.PurchasePrice)))

	existing.Quantity += lot.Quantity
	existing.PurchasePrice = cost.Div(total).InexactFloat64()
	return existing, nil
}

// RemoveHolding removes the holding for symbol and reports whether it existed.
func (p *Portfolio) RemoveHolding(symbol string) bool {
	i := p.index(symbol)
	if i < 0 {
		return false
	}
	p.holdings = append(p.holdings[:i], p.holdings[i+1:]...)
	p.touch()
	return true
}

// UpdatePrice sets the current price of symbol and reports whether it is held.
func (p *Portfolio) UpdatePrice(symbol string, price float64) bool {
	i := p.index(symbol)
	if i < 0 {
		return false
	}
	now := p.now()
	p.holdings[i].CurrentPrice = price
	p.holdings[i].LastUpdated = now
	p.lastUpdated = now
	return true
}

func (p *Portfolio) TotalValue() float64 {
	var total float64
	for _, h := range p.holdings {
		total += h.CurrentValue()
	}
	return total
}

func (p *Portfolio) TotalCost() float64 {
	var total float64
	for _, h := range p.holdings {
		total += h.CostBasis()
	}
	return total
}

func (p *Portfolio) TotalGainLoss() float64 { return p.TotalValue() - p.TotalCost() }

// PercentGainLoss is the total gain relative to the total cost, 0 when nothing was paid.
func (p *Portfolio) PercentGainLoss() float64 {
	cost := p.TotalCost()
	if cost <= 0 {
		return 0
	}
	return p.TotalGainLoss() / cost * 100
}

// Best returns the holding with the highest percent gain. The first one wins ties.
func (p *Portfolio) Best() (Holding, bool) {
	return p.pick(func(a, b Holding) bool { return a.PercentGainLoss() > b.PercentGainLoss() })
}

// Worst returns the holding with the lowest percent gain. The first one wins ties.
func (p *Portfolio) Worst() (Holding, bool) {
	return p.pick(func(a, b Holding) bool { return a.PercentGainLoss() < b.PercentGainLoss() })
}

func (p *Portfolio) pick(better func(a, b Holding) bool) (Holding, bool) {
	if len(p.holdings) == 0 {
		return Holding{}, false
	}
	best := p.holdings[0]
	for _, h := range p.holdings[1:] {
		if better(h, best) {
			best = h
		}
	}
	return best, true
}

func (p *Portfolio) index(symbol string) int {
	for i, h := range p.holdings {
		if h.Symbol == symbol {
			return i
		}
	}
	return -1
}

func (p *Portfolio) now() time.Time {
	if p.clock == nil {
		return SystemClock.Now()
	}
	return p.clock.Now()
}

func (p *Portfolio) touch() { p.lastUpdated = p.now() }
