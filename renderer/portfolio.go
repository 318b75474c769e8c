// Package renderer formats portfolios and quotes as markdown.
package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/quote"
)

const timeLayout = "2006-01-02 15:04"

// CatalogMarkdown renders the list of all portfolios.
func CatalogMarkdown(c stockfolio.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolios\n\n")
	if len(c) == 0 {
		fmt.Fprintln(&b, "No portfolios found. Create one with `folio create <name>`.")
		return b.String()
	}
	fmt.Fprintln(&b, "| # | Name | Description | Holdings | Value | Gain/Loss |")
	fmt.Fprintln(&b, "|---:|:---|:---|---:|---:|---:|")
	for i, p := range c {
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %s | %s |\n",
			i+1,
			cell(p.Name()),
			cell(p.Description()),
			p.Len(),
			USD(p.TotalValue()),
			SignedUSD(p.TotalGainLoss()),
		)
	}
	return b.String()
}

// PortfolioMarkdown renders the details of a portfolio and its holdings.
func PortfolioMarkdown(p *stockfolio.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name())
	if p.Description() != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description())
	}
	fmt.Fprintf(&b, "Created %s, updated %s.\n\n", p.CreatedAt().Format(timeLayout), p.LastUpdated().Format(timeLayout))

	if p.Len() == 0 {
		fmt.Fprintln(&b, "No holdings in this portfolio.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Name | Quantity | Purchase | Current | Value | Gain/Loss | % |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|")
	for _, h := range p.Holdings() {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %s | %s |\n",
			cell(h.Symbol),
			cell(h.Name),
			h.Quantity,
			USD(h.PurchasePrice),
			USD(h.CurrentPrice),
			USD(h.CurrentValue()),
			SignedUSD(h.GainLoss()),
			Percent(h.PercentGainLoss()),
		)
	}
	fmt.Fprintln(&b)
	writeTotals(&b, p)
	return b.String()
}

// AnalysisMarkdown renders the totals of a portfolio with its best and worst holdings.
func AnalysisMarkdown(p *stockfolio.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis: %s\n\n", p.Name())
	writeTotals(&b, p)

	ConditionalBlock(&b, func(w io.Writer) bool {
		best, ok := p.Best()
		if !ok {
			return false
		}
		worst, _ := p.Worst()
		fmt.Fprintln(w)
		fmt.Fprintf(w, "- Best performing: **%s** (%s)\n", best.Symbol, Percent(best.PercentGainLoss()))
		fmt.Fprintf(w, "- Worst performing: **%s** (%s)\n", worst.Symbol, Percent(worst.PercentGainLoss()))
		return true
	})
	return b.String()
}

func writeTotals(w io.Writer, p *stockfolio.Portfolio) {
	fmt.Fprintln(w, "| | |")
	fmt.Fprintln(w, "|:---|---:|")
	fmt.Fprintf(w, "| Total cost | %s |\n", USD(p.TotalCost()))
	fmt.Fprintf(w, "| Current value | %s |\n", USD(p.TotalValue()))
	fmt.Fprintf(w, "| Gain/Loss | %s (%s) |\n", SignedUSD(p.TotalGainLoss()), Percent(p.PercentGainLoss()))
}

// QuoteMarkdown renders a quote fetched at the given time.
func QuoteMarkdown(q quote.Quote, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", q.Symbol)
	fmt.Fprintf(&b, "- Name: %s\n", q.Name)
	fmt.Fprintf(&b, "- Current price: %s\n", USD(q.Price))
	fmt.Fprintf(&b, "- Last updated: %s\n", at.Format(timeLayout))
	if q.Fallback {
		fmt.Fprintln(&b, "\n_Quote service unavailable, showing reference data._")
	}
	return b.String()
}
