package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	portfolio string
	symbol    string
	quantity  int
	price     float64
	name      string
	offline   bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a stock to a portfolio" }
func (*addCmd) Usage() string {
	return `folio add -p <portfolio> -s <symbol> -q <quantity> -price <price> [-name <name>] [-offline]

  Adds a lot of a stock to a portfolio. The company name and current price are
  looked up from the quote service.

  Adding a symbol already held merges both lots: quantities are summed and the
  purchase price becomes their weighted average.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio name")
	f.StringVar(&c.symbol, "s", "", "Stock symbol, e.g. AAPL")
	f.IntVar(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.price, "price", 0, "Purchase price per share")
	f.StringVar(&c.name, "name", "", "Company name, overrides the quote service")
	f.BoolVar(&c.offline, "offline", false, "do not query the quote service, the current price is the purchase price")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, err := normalizeSymbol(c.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := checkText(c.name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	h := stockfolio.NewHolding(symbol, c.name, c.quantity, c.price)
	if err := h.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	p, ok := findPortfolio(catalog, c.portfolio)
	if !ok {
		return subcommands.ExitFailure
	}

	if !c.offline {
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
		if h.Name == "" {
			h.Name = quote.Name
		}
		h.CurrentPrice = quote.Price
	}
	if h.Name == "" {
		h.Name = symbol
	}

	if err := p.AddHolding(h); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding holding: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveCatalog(catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	added, _ := p.Holding(symbol)
	fmt.Fprintf(stdout, "Holding %s in %q: %d shares at %s.\n", symbol, p.Name(), added.Quantity, renderer.USD(added.PurchasePrice))
	return subcommands.ExitSuccess
}

// removeCmd holds the flags for the 'remove' subcommand.
type removeCmd struct {
	portfolio string
	symbol    string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a stock from a portfolio" }
func (*removeCmd) Usage() string {
	return `folio remove -p <portfolio> -s <symbol>
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio name")
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, err := normalizeSymbol(c.symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	p, ok := findPortfolio(catalog, c.portfolio)
	if !ok {
		return subcommands.ExitFailure
	}
	if !p.RemoveHolding(symbol) {
		fmt.Fprintf(os.Stderr, "Error: %s is not held in %q\n", symbol, p.Name())
		return subcommands.ExitFailure
	}
	if err := SaveCatalog(catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Holding %s removed from %q.\n", symbol, p.Name())
	return subcommands.ExitSuccess
}

// refreshCmd holds the flags for the 'refresh' subcommand.
type refreshCmd struct {
	portfolio string
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "update the current prices of a portfolio" }
func (*refreshCmd) Usage() string {
	return `folio refresh [-p <portfolio>]

  Fetches the latest price of every holding. Without -p, every portfolio is refreshed.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio name, all portfolios if empty")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	selected := catalog
	if c.portfolio != "" {
		p, ok := findPortfolio(catalog, c.portfolio)
		if !ok {
			return subcommands.ExitFailure
		}
		selected = stockfolio.Catalog{p}
	}

	q, err := openQuoter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, p := range selected {
		changes, err := refreshPrices(ctx, q, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error refreshing prices: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RefreshMarkdown(p.Name(), changes))
	}
	if err := SaveCatalog(catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// refreshPrices updates the current price of every holding of p.
// A symbol without quote keeps its price, only a canceled ctx stops the refresh.
func refreshPrices(ctx context.Context, q quoter, p *stockfolio.Portfolio) ([]renderer.PriceChange, error) {
	var changes []renderer.PriceChange
	for _, h := range p.Holdings() {
		if err := ctx.Err(); err != nil {
			return changes, err
		}
		change := renderer.PriceChange{Symbol: h.Symbol, Old: h.CurrentPrice}
		quote, err := q.Quote(ctx, h.Symbol)
		if err != nil {
			logger.Warn("price not refreshed", zap.String("portfolio", p.Name()), zap.String("symbol", h.Symbol), zap.Error(err))
			change.Err = err
			changes = append(changes, change)
			continue
		}
		p.UpdatePrice(h.Symbol, quote.Price)
		change.New, change.Fallback = quote.Price, quote.Fallback
		changes = append(changes, change)
	}
	return changes, nil
}

// refreshAll refreshes every portfolio of c, errors on individual symbols are only logged.
func refreshAll(ctx context.Context, q quoter, c stockfolio.Catalog) error {
	for _, p := range c {
		if _, err := refreshPrices(ctx, q, p); err != nil {
			return err
		}
	}
	return nil
}
