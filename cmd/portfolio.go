package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/renderer"
	"github.com/google/subcommands"
)

// createCmd creates an empty portfolio.
type createCmd struct{}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a new portfolio" }
func (*createCmd) Usage() string {
	return `folio create <name> [description...]

  Creates an empty portfolio. The remaining arguments form its description.
`
}
func (*createCmd) SetFlags(f *flag.FlagSet) {}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: a portfolio name is required")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)
	description := strings.Join(f.Args()[1:], " ")
	if err := checkName(name); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating portfolio: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := checkText(description); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating portfolio: %v\n", err)
		return subcommands.ExitUsageError
	}

	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := catalog.Add(stockfolio.NewPortfolio(name, description, stockfolio.SystemClock)); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveCatalog(catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Portfolio %q created.\n", name)
	return subcommands.ExitSuccess
}

// listCmd lists every portfolio with its totals.
type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all portfolios" }
func (*listCmd) Usage() string {
	return `folio list

  Lists all portfolios with their number of holdings, value and gain.
`
}
func (*listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CatalogMarkdown(catalog))
	return subcommands.ExitSuccess
}

// showCmd displays a portfolio and its holdings.
type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a portfolio and its holdings" }
func (*showCmd) Usage() string {
	return `folio show <name>

  Displays the holdings of a portfolio, valued at the last known prices.
  Use 'refresh' to fetch the latest prices first.
`
}
func (*showCmd) SetFlags(f *flag.FlagSet) {}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.PortfolioMarkdown(p))
	return subcommands.ExitSuccess
}

// renameCmd changes the name of a portfolio.
type renameCmd struct{}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a portfolio" }
func (*renameCmd) Usage() string {
	return `folio rename <old> <new>
`
}
func (*renameCmd) SetFlags(f *flag.FlagSet) {}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: the old and new names are required")
		return subcommands.ExitUsageError
	}
	oldName, newName := f.Arg(0), f.Arg(1)
	if err := checkName(newName); err != nil {
		fmt.Fprintf(os.Stderr, "Error renaming portfolio: %v\n", err)
		return subcommands.ExitUsageError
	}

	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	p, ok := findPortfolio(catalog, oldName)
	if !ok {
		return subcommands.ExitFailure
	}
	if other := catalog.Find(newName); other != nil && other != p {
		fmt.Fprintf(os.Stderr, "Error renaming portfolio: %v: %q\n", stockfolio.ErrDuplicatePortfolio, newName)
		return subcommands.ExitFailure
	}
	p.SetName(newName)
	if err := SaveCatalog(catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Portfolio %q renamed to %q.\n", oldName, newName)
	return subcommands.ExitSuccess
}

// describeCmd replaces the description of a portfolio.
type describeCmd struct{}

func (*describeCmd) Name() string     { return "describe" }
func (*describeCmd) Synopsis() string { return "change the description of a portfolio" }
func (*describeCmd) Usage() string {
	return `folio describe <name> [description...]

  Replaces the description of a portfolio. Without description, it is cleared.
`
}
func (*describeCmd) SetFlags(f *flag.FlagSet) {}

func (c *describeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: a portfolio name is required")
		return subcommands.ExitUsageError
	}
	description := strings.Join(f.Args()[1:], " ")
	if err := checkText(description); err != nil {
		fmt.Fprintf(os.Stderr, "Error describing portfolio: %v\n", err)
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
	p.SetDescription(description)
	if err := SaveCatalog(catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Portfolio %q updated.\n", p.Name())
	return subcommands.ExitSuccess
}

// deleteCmd removes a portfolio and all its holdings.
type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a portfolio" }
func (*deleteCmd) Usage() string {
	return `folio delete <name>

  Deletes a portfolio and all its holdings.
`
}
func (*deleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one portfolio name is required")
		return subcommands.ExitUsageError
	}
	catalog, err := OpenCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	if !catalog.Remove(f.Arg(0)) {
		fmt.Fprintf(os.Stderr, "Error: portfolio %q not found\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	if err := SaveCatalog(catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Portfolio %q deleted.\n", f.Arg(0))
	return subcommands.ExitSuccess
}
