package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"TickerDesk/internal/resolve"
)

type searchCmd struct {
	app *App
}

// NewSearchCmd resolves free text against the instrument catalog.
func NewSearchCmd(app *App) subcommands.Command { return &searchCmd{app: app} }

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "resolve free text to instrument symbols" }
func (*searchCmd) Usage() string {
	return `search <text>

  Resolves a ticker or company-name fragment to ranked catalog matches.
  Unknown but plausible symbols are checked against the data source.
`
}

func (c *searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	matches, err := c.app.Resolver.Resolve(ctx, query)
	if err != nil {
		var ve *resolve.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ve)
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(matches) == 0 {
		fmt.Printf("No matches for %q.\n", query)
		return subcommands.ExitSuccess
	}

	fmt.Printf("%-8s %-45s %-7s %s\n", "SYMBOL", "NAME", "KIND", "CONFIDENCE")
	for _, m := range matches {
		fmt.Printf("%-8s %-45s %-7s %.2f\n", m.Symbol, m.Name, m.Kind, m.Confidence)
	}
	return subcommands.ExitSuccess
}
