package stockfolio

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidHolding is returned by Holding.Validate.
var ErrInvalidHolding = errors.New("invalid holding")

// Holding is a position in a single instrument.
type Holding struct {
	Symbol        string // unique within a Portfolio
	Name          string // display name, usually the company name
	Quantity      int
	PurchasePrice float64 // average price paid per unit
	CurrentPrice  float64 // last known market price per unit
	LastUpdated   time.Time
}

// NewHolding returns a holding whose current price defaults to the purchase price.
func NewHolding(symbol, name string, quantity int, purchasePrice float64) Holding {
	return Holding{
		Symbol:        symbol,
		Name:          name,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		CurrentPrice:  purchasePrice,
	}
}

func (h Holding) CurrentValue() float64 { return float64(h.Quantity) * h.CurrentPrice }
func (h Holding) CostBasis() float64    { return float64(h.Quantity) * h.PurchasePrice }
func (h Holding) GainLoss() float64     { return h.CurrentValue() - h.CostBasis() }

// PercentGainLoss returns the gain relative to the cost basis, in percent.
// It is 0 when the cost basis is 0.
func (h Holding) PercentGainLoss() float64 {
	cost := h.CostBasis()
	if cost == 0 {
		return 0
	}
	return h.GainLoss() / cost * 100
}

// Validate checks the invariants a holding must satisfy before entering a portfolio.
func (h Holding) Validate() error {
	switch {
	case h.Symbol == "":
		return fmt.Errorf("%w: empty symbol", ErrInvalidHolding)
	case h.Quantity <= 0:
		return fmt.Errorf("%w: %s: quantity must be positive, got %d", ErrInvalidHolding, h.Symbol, h.Quantity)
	case h.PurchasePrice <= 0:
		return fmt.Errorf("%w: %s: purchase price must be positive, got %v", ErrInvalidHolding, h.Symbol, h.PurchasePrice)
	case h.CurrentPrice < 0:
		return fmt.Errorf("%w: %s: current price must not be negative, got %v", ErrInvalidHolding, h.Symbol, h.CurrentPrice)
	}
	return nil
}
