package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type quoteCmd struct {
	app *App
}

// NewQuoteCmd prints the latest quote for a symbol.
func NewQuoteCmd(app *App) subcommands.Command { return &quoteCmd{app: app} }

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the latest quote for a symbol" }
func (*quoteCmd) Usage() string {
	return `quote <symbol>

  Fetches the latest price and metadata for a symbol. Metadata is cached
  briefly, so a repeated quote may not hit the data source.
`
}

func (c *quoteCmd) SetFlags(*flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: quote takes exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(strings.TrimSpace(f.Arg(0)))

	q, err := c.app.Engine.Info(ctx, symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	name := q.Name
	if name == "" {
		name = symbol
	}
	fmt.Printf("%s (%s)\n", name, q.Symbol)
	fmt.Printf("  Category: %s\n", q.Category)
	fmt.Printf("  Price:    %s\n", FormatCurrency(q.LastPrice))
	if !q.AsOf.IsZero() {
		fmt.Printf("  As of:    %s\n", q.AsOf.Format("2006-01-02 15:04:05 MST"))
	}
	return subcommands.ExitSuccess
}
