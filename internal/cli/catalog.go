package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"TickerDesk/internal/catalog"
)

type catalogCmd struct {
	app *App
	out string
}

// NewCatalogCmd lists or exports the instrument catalog.
func NewCatalogCmd(app *App) subcommands.Command { return &catalogCmd{app: app} }

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list or export the instrument catalog" }
func (*catalogCmd) Usage() string {
	return `catalog [-export file]

  Lists the loaded instrument catalog. -export writes it as CSV, which can
  be edited and pointed at via catalog.csv_path or CATALOG_CSV_PATH.
`
}

func (c *catalogCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "export", "", "write the catalog to a CSV file")
}

func (c *catalogCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.out != "" {
		if err := catalog.WriteFile(c.out, c.app.Catalog.All()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Exported %d instruments to %s\n", c.app.Catalog.Len(), c.out)
		return subcommands.ExitSuccess
	}

	fmt.Printf("%-8s %-50s %s\n", "SYMBOL", "NAME", "CATEGORY")
	for _, inst := range c.app.Catalog.All() {
		fmt.Printf("%-8s %-50s %s\n", inst.Symbol, inst.Name, inst.Category)
	}
	return subcommands.ExitSuccess
}
