package cmd

import (
	"os"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers a shell completion request and exits, it returns
// immediately when the program is not run for completion.
//
// Install with COMP_INSTALL=1 <program>.
func Complete(name string) {
	completion().Complete(name)
}

func completion() *complete.Command {
	portfolios := complete.PredictFunc(predictPortfolios)
	topics, _ := docs.All()
	symbols := complete.PredictFunc(predictSymbols)
	type flags = map[string]complete.Predictor

	// Global flags are parsed before the subcommand name only.
	return &complete.Command{
		Flags: flags{
			"data-file": predict.Files("*.csv"),
			"raw":       predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"create":   {},
			"list":     {},
			"show":     {Args: portfolios},
			"rename":   {Args: portfolios},
			"describe": {Args: portfolios},
			"delete":   {Args: portfolios},
			"add": {Flags: flags{
				"p":       portfolios,
				"s":       symbols,
				"q":       predict.Something,
				"price":   predict.Something,
				"name":    predict.Something,
				"offline": predict.Nothing,
			}},
			"remove": {Flags: flags{
				"p": portfolios,
				"s": symbols,
			}},
			"refresh": {Flags: flags{
				"p": portfolios,
			}},
			"search": {Args: symbols},
			"analyze": {Args: portfolios, Flags: flags{
				"cached": predict.Nothing,
			}},
			"topic":   {Args: predict.Set(append(topics, "*"))},
			"top": {Flags: flags{
				"by":     predict.Set{"pct", "gain", "value"},
				"n":      predict.Something,
				"cached": predict.Nothing,
			}},
		},
	}
}

// completionCatalog loads the catalog quietly, completion must never print errors.
func completionCatalog() stockfolio.Catalog {
	name := os.Getenv("STOCKFOLIO_DATA_FILE")
	if name == "" {
		name = "portfolio_data.csv"
	}
	c, err := stockfolio.Load(name)
	if err != nil {
		return nil
	}
	return c
}

func predictPortfolios(prefix string) []string {
	var names []string
	for _, p := range completionCatalog() {
		names = append(names, p.Name())
	}
	return names
}

func predictSymbols(prefix string) []string {
	seen := map[string]bool{}
	var symbols []string
	for _, h := range completionCatalog().Holdings() {
		if !seen[h.Symbol] {
			seen[h.Symbol] = true
			symbols = append(symbols, h.Symbol)
		}
	}
	return symbols
}
