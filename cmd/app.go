// Package cmd implements the CLI application to manage stock portfolios.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/config"
	"github.com/etnz/stockfolio/quote"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "portfolios")
	c.Register(&listCmd{}, "portfolios")
	c.Register(&showCmd{}, "portfolios")
	c.Register(&renameCmd{}, "portfolios")
	c.Register(&describeCmd{}, "portfolios")
	c.Register(&deleteCmd{}, "portfolios")

	c.Register(&addCmd{}, "holdings")
	c.Register(&removeCmd{}, "holdings")
	c.Register(&refreshCmd{}, "holdings")

	c.Register(&searchCmd{}, "market")
	c.Register(&analyzeCmd{}, "market")
	c.Register(&topCmd{}, "market")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataFile = flag.String("data-file", "", "Path to the portfolio data file (default $STOCKFOLIO_DATA_FILE or portfolio_data.csv)")
var rawOutput = flag.Bool("raw", false, "Print plain markdown instead of rendering it for the terminal")

var (
	settings *config.Config
	logger   *zap.Logger = zap.NewNop()
	stdout   io.Writer   = os.Stdout
)

// quoter is the part of quote.Provider the commands use.
type quoter interface {
	Quote(ctx context.Context, symbol string) (quote.Quote, error)
}

// newQuoter builds the quote provider from the settings.
var newQuoter = func(cfg *config.Config) quoter {
	var transport http.RoundTripper
	if cfg.Cache {
		transport = quote.NewDailyCache(cfg.CacheDir, nil, logger)
	}
	fetcher := quote.NewHTTPFetcher(cfg.HTTPTimeout, transport, logger)
	return quote.NewProvider(fetcher, cfg.APIURL, cfg.APIKey, logger)
}

// Setup resolves the settings and builds the logger.
// Commands call it lazily, main may call it earlier to fail fast.
func Setup() error {
	if settings != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	l, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	settings, logger = cfg, l
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("config error: invalid log level %q: %w", level, err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = lvl
	zc.DisableStacktrace = true
	return zc.Build()
}

// DataFile returns the path of the catalog file, the flag wins over the settings.
func DataFile() string {
	if *dataFile != "" {
		return *dataFile
	}
	if settings != nil && settings.DataFile != "" {
		return settings.DataFile
	}
	return "portfolio_data.csv"
}

// OpenCatalog loads the catalog from the app data file.
func OpenCatalog() (stockfolio.Catalog, error) {
	if err := Setup(); err != nil {
		return nil, err
	}
	return stockfolio.Load(DataFile(), stockfolio.WithLogger(logger))
}

// SaveCatalog rewrites the app data file with the whole catalog.
func SaveCatalog(c stockfolio.Catalog) error {
	return stockfolio.Save(DataFile(), c)
}

// openQuoter returns the quote provider configured by the settings.
func openQuoter() (quoter, error) {
	if err := Setup(); err != nil {
		return nil, err
	}
	return newQuoter(settings), nil
}

// printMarkdown renders md for the terminal, or prints it as is in raw mode.
func printMarkdown(md string) {
	if !*rawOutput {
		out, err := render(md)
		if err == nil {
			fmt.Fprint(stdout, out)
			return
		}
		logger.Debug("cannot render markdown, printing raw", zap.Error(err))
	}
	fmt.Fprint(stdout, md)
}

func render(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

var errInvalidName = errors.New("invalid name")

// checkName rejects names that the data file cannot store.
func checkName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty name", errInvalidName)
	case name == "---":
		return fmt.Errorf("%w: %q is the portfolio separator", errInvalidName, name)
	case strings.ContainsAny(name, ",\r\n"):
		return fmt.Errorf("%w: %q contains a comma or a line break", errInvalidName, name)
	}
	return nil
}

// checkText rejects free text spanning several lines.
func checkText(text string) error {
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: %q contains a line break", errInvalidName, text)
	}
	return nil
}

// normalizeSymbol upper cases a ticker and rejects the ones the data file cannot store.
func normalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || strings.ContainsAny(s, ", \t\r\n") {
		return "", fmt.Errorf("invalid symbol %q", symbol)
	}
	return s, nil
}

// findPortfolio returns the portfolio called name or prints an error.
func findPortfolio(c stockfolio.Catalog, name string) (*stockfolio.Portfolio, bool) {
	p := c.Find(name)
	if p == nil {
		fmt.Fprintf(os.Stderr, "Error: portfolio %q not found\n", name)
		return nil, false
	}
	return p, true
}
