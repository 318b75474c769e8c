package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/stockfolio"
)

// Metric ranks holdings for the top performers report.
type Metric string

const (
	ByPercent Metric = "pct"
	ByGain    Metric = "gain"
	ByValue   Metric = "value"
)

// ParseMetric returns the metric named s.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case ByPercent, ByGain, ByValue:
		return m, nil
	}
	return "", fmt.Errorf("unknown metric %q, want one of %q, %q, %q", s, ByPercent, ByGain, ByValue)
}

func (m Metric) of(h stockfolio.Holding) float64 {
	switch m {
	case ByGain:
		return h.GainLoss()
	case ByValue:
		return h.CurrentValue()
	default:
		return h.PercentGainLoss()
	}
}

func (m Metric) title() string {
	switch m {
	case ByGain:
		return "gain/loss"
	case ByValue:
		return "current value"
	default:
		return "gain/loss %"
	}
}

// Top returns the n holdings ranking highest on m, in decreasing order.
// Equal holdings keep their catalog order. n <= 0 means 5.
func Top(holdings []stockfolio.PortfolioHolding, m Metric, n int) []stockfolio.PortfolioHolding {
	if n <= 0 {
		n = 5
	}
	ranked := append([]stockfolio.PortfolioHolding(nil), holdings...)
	sort.SliceStable(ranked, func(i, j int) bool { return m.of(ranked[i].Holding) > m.of(ranked[j].Holding) })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TopMarkdown renders ranked holdings as returned by Top.
func TopMarkdown(ranked []stockfolio.PortfolioHolding, m Metric) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Top %d performing holdings by %s\n\n", len(ranked), m.title())
	if len(ranked) == 0 {
		fmt.Fprintln(&b, "No holdings found in any portfolio.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Rank | Symbol | Name | Portfolio | Purchase | Current | Gain/Loss | % |")
	fmt.Fprintln(&b, "|---:|:---|:---|:---|---:|---:|---:|---:|")
	for i, ph := range ranked {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			i+1,
			cell(ph.Symbol),
			cell(ph.Name),
			cell(ph.Portfolio),
			USD(ph.PurchasePrice),
			USD(ph.CurrentPrice),
			SignedUSD(ph.GainLoss()),
			Percent(ph.PercentGainLoss()),
		)
	}
	return b.String()
}
