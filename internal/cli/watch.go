package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"TickerDesk/internal/store"
)

type watchCmd struct {
	app   *App
	notes string
}

// NewWatchCmd adds a symbol to the watchlist.
func NewWatchCmd(app *App) subcommands.Command { return &watchCmd{app: app} }

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "add a symbol to the watchlist" }
func (*watchCmd) Usage() string {
	return `watch [-notes text] <symbol>

  Adds a symbol to the watchlist. The name is taken from the catalog when
  present, otherwise from the data source.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.notes, "notes", "", "free-form note stored with the entry")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: watch takes exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(strings.TrimSpace(f.Arg(0)))

	name := symbol
	if inst, ok := c.app.Catalog.LookupExact(symbol); ok {
		name = inst.Name
	} else if q, ok := c.app.Engine.Probe(ctx, symbol); ok && q.Name != "" {
		name = q.Name
	}

	st, err := c.app.Store(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := st.AddWatch(ctx, symbol, name, c.notes); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fmt.Printf("%s is already on the watchlist.\n", symbol)
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Watching %s (%s).\n", symbol, name)
	return subcommands.ExitSuccess
}

type unwatchCmd struct {
	app *App
}

// NewUnwatchCmd removes a symbol from the watchlist.
func NewUnwatchCmd(app *App) subcommands.Command { return &unwatchCmd{app: app} }

func (*unwatchCmd) Name() string     { return "unwatch" }
func (*unwatchCmd) Synopsis() string { return "remove a symbol from the watchlist" }
func (*unwatchCmd) Usage() string {
	return `unwatch <symbol>

  Removes a symbol from the watchlist.
`
}

func (c *unwatchCmd) SetFlags(*flag.FlagSet) {}

func (c *unwatchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: unwatch takes exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(strings.TrimSpace(f.Arg(0)))

	st, err := c.app.Store(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := st.RemoveWatch(ctx, symbol); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Printf("%s is not on the watchlist.\n", symbol)
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Stopped watching %s.\n", symbol)
	return subcommands.ExitSuccess
}

type watchlistCmd struct {
	app    *App
	quotes bool
}

// NewWatchlistCmd lists the watchlist, optionally with live quotes.
func NewWatchlistCmd(app *App) subcommands.Command { return &watchlistCmd{app: app} }

func (*watchlistCmd) Name() string     { return "watchlist" }
func (*watchlistCmd) Synopsis() string { return "list watched symbols" }
func (*watchlistCmd) Usage() string {
	return `watchlist [-quotes]

  Lists watched symbols. With -quotes each row includes the latest price;
  symbols whose quote fails are still listed.
`
}

func (c *watchlistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quotes, "quotes", false, "include the latest price per symbol")
}

func (c *watchlistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := c.app.Store(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	items, err := st.Watchlist(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(items) == 0 {
		fmt.Println("Watchlist is empty.")
		return subcommands.ExitSuccess
	}

	if c.quotes {
		fmt.Printf("%-8s %-40s %12s %-10s %s\n", "SYMBOL", "NAME", "PRICE", "ADDED", "NOTES")
	} else {
		fmt.Printf("%-8s %-40s %-10s %s\n", "SYMBOL", "NAME", "ADDED", "NOTES")
	}
	for _, it := range items {
		added := it.AddedAt.Format("2006-01-02")
		if c.quotes {
			price := "N/A"
			if q, err := c.app.Engine.Info(ctx, it.Symbol); err == nil {
				price = FormatCurrency(q.LastPrice)
			}
			fmt.Printf("%-8s %-40s %12s %-10s %s\n", it.Symbol, it.Name, price, added, it.Notes)
		} else {
			fmt.Printf("%-8s %-40s %-10s %s\n", it.Symbol, it.Name, added, it.Notes)
		}
	}
	return subcommands.ExitSuccess
}
