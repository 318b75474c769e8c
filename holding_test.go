package stockfolio

import (
	"errors"
	"math"
	"testing"
)

func TestHolding_Derived(t *testing.T) {
	testCases := []struct {
		name        string
		h           Holding
		wantValue   float64
		wantCost    float64
		wantGain    float64
		wantPercent float64
	}{
		{
			name:        "gain",
			h:           Holding{Symbol: "AAPL", Quantity: 10, PurchasePrice: 100, CurrentPrice: 150},
			wantValue:   1500,
			wantCost:    1000,
			wantGain:    500,
			wantPercent: 50,
		},
		{
			name:        "loss",
			h:           Holding{Symbol: "TSLA", Quantity: 4, PurchasePrice: 200, CurrentPrice: 150},
			wantValue:   600,
			wantCost:    800,
			wantGain:    -200,
			wantPercent: -25,
		},
		{
			name:        "zero cost basis",
			h:           Holding{Symbol: "FREE", Quantity: 3, PurchasePrice: 0, CurrentPrice: 10},
			wantValue:   30,
			wantCost:    0,
			wantGain:    30,
			wantPercent: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.h.CurrentValue(); got != tc.wantValue {
				t.Errorf("CurrentValue() = %v, want %v", got, tc.wantValue)
			}
			if got := tc.h.CostBasis(); got != tc.wantCost {
				t.Errorf("CostBasis() = %v, want %v", got, tc.wantCost)
			}
			if got := tc.h.GainLoss(); got != tc.wantGain {
				t.Errorf("GainLoss() = %v, want %v", got, tc.wantGain)
			}
			got := tc.h.PercentGainLoss()
			if math.IsNaN(got) || math.IsInf(got, 0) || got != tc.wantPercent {
				t.Errorf("PercentGainLoss() = %v, want %v", got, tc.wantPercent)
			}
		})
	}
}

func TestNewHolding(t *testing.T) {
	h := NewHolding("MSFT", "Microsoft Corporation", 5, 300)
	if h.CurrentPrice != 300 {
		t.Errorf("NewHolding().CurrentPrice = %v, want 300", h.CurrentPrice)
	}
}

func TestHolding_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		h       Holding
		wantErr bool
	}{
		{"valid", H("AAPL", 1, 1), false},
		{"zero current price", Holding{Symbol: "AAPL", Quantity: 1, PurchasePrice: 1}, false},
		{"empty symbol", H("", 1, 1), true},
		{"zero quantity", H("AAPL", 0, 1), true},
		{"negative quantity", H("AAPL", -3, 1), true},
		{"zero price", H("AAPL", 1, 0), true},
		{"negative current price", Holding{Symbol: "AAPL", Quantity: 1, PurchasePrice: 1, CurrentPrice: -1}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.h.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidHolding) {
				t.Errorf("Validate() error = %v, want ErrInvalidHolding", err)
			}
		})
	}
}
