package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/stockfolio/renderer"
	"github.com/google/subcommands"
)

// searchCmd looks up a single symbol.
type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "look up the price of a stock" }
func (*searchCmd) Usage() string {
	return `folio search <symbol>

  Displays the company name and latest price of a stock.
`
}
func (*searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one symbol is required")
		return subcommands.ExitUsageError
	}
	symbol, err := normalizeSymbol(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	q, err := openQuoter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	quote, err := q.Quote(ctx, symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error looking up %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.QuoteMarkdown(quote, time.Now()))
	return subcommands.ExitSuccess
}

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	cached bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "display the performance of a portfolio" }
func (*analyzeCmd) Usage() string {
	return `folio analyze [-cached] <portfolio>

  Refreshes the prices of a portfolio, then displays its total cost, value,
  gain and its best and worst holdings.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.cached, "cached", false, "use the last known prices instead of refreshing them")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one portfolio name is required")
		return subcommands.ExitUsageError
	}
	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	p, ok := findPortfolio(catalog, f.Arg(0))
	if !ok {
		return subcommands.ExitFailure
	}

	if !c.cached {
		q, err := openQuoter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if _, err := refreshPrices(ctx, q, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error refreshing prices: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := SaveCatalog(catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.AnalysisMarkdown(p))
	return subcommands.ExitSuccess
}

// topCmd holds the flags for the 'top' subcommand.
type topCmd struct {
	by     string
	n      int
	cached bool
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "rank holdings across all portfolios" }
func (*topCmd) Usage() string {
	return `folio top [-by pct|gain|value] [-n 5] [-cached]

  Refreshes the prices of every portfolio, then ranks all holdings by percent
  gain, absolute gain or current value.
`
}

func (c *topCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", string(renderer.ByPercent), "ranking metric: pct, gain or value")
	f.IntVar(&c.n, "n", 5, "number of holdings to display")
	f.BoolVar(&c.cached, "cached", false, "use the last known prices instead of refreshing them")
}

func (c *topCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	metric, err := renderer.ParseMetric(c.by)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.n <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -n must be positive, got %d\n", c.n)
		return subcommands.ExitUsageError
	}

	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.cached {
		q, err := openQuoter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := refreshAll(ctx, q, catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error refreshing prices: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := SaveCatalog(catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	printMarkdown(renderer.TopMarkdown(renderer.Top(catalog.Holdings(), metric, c.n), metric))
	return subcommands.ExitSuccess
}
