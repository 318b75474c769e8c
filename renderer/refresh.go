package renderer

import (
	"fmt"
	"strings"
)

// PriceChange is the outcome of refreshing the price of one holding.
type PriceChange struct {
	Symbol   string
	Old, New float64
	Fallback bool  // New comes from the reference table
	Err      error // the price was left unchanged
}

// RefreshMarkdown renders the outcome of a price refresh of portfolio.
func RefreshMarkdown(portfolio string, changes []PriceChange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Prices: %s\n\n", portfolio)
	if len(changes) == 0 {
		fmt.Fprintln(&b, "No holdings to refresh.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Symbol | Previous | Current | Change | Note |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|")
	var failed int
	for _, c := range changes {
		if c.Err != nil {
			failed++
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", cell(c.Symbol), USD(c.Old), USD(c.Old), SignedUSD(0), cell(c.Err.Error()))
			continue
		}
		note := ""
		if c.Fallback {
			note = "reference data"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", cell(c.Symbol), USD(c.Old), USD(c.New), SignedUSD(c.New-c.Old), cell(note))
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "%d of %d prices updated.\n", len(changes)-failed, len(changes))
	return b.String()
}
