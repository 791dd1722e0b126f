package cli

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"TickerDesk/internal/model"
)

type historyCmd struct {
	app *App

	period  string
	tail    int
	refresh bool
	csvPath string
}

// NewHistoryCmd prints or exports historical bars for a symbol.
func NewHistoryCmd(app *App) subcommands.Command { return &historyCmd{app: app} }

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show historical bars for a symbol" }
func (*historyCmd) Usage() string {
	return `history [-period 1y] [-tail N] [-refresh] [-csv file] <symbol>

  Fetches daily bars for a symbol over the given period. Long series are
  thinned toward the past while recent bars keep full density; -tail shows
  only the most recent N raw bars instead. -refresh drops the cached series
  before fetching, and -csv writes the bars to a file instead of stdout.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", string(model.Period1Y), "history period ("+strings.Join(model.PeriodNames(), ", ")+")")
	f.IntVar(&c.tail, "tail", 0, "show only the most recent N raw bars")
	f.BoolVar(&c.refresh, "refresh", false, "drop the cached series before fetching")
	f.StringVar(&c.csvPath, "csv", "", "write bars to a CSV file instead of stdout")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: history takes exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(strings.TrimSpace(f.Arg(0)))

	period, err := model.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.refresh {
		c.app.Engine.Invalidate(symbol, period)
	}

	var series *model.Series
	if c.tail > 0 {
		series, err = c.app.Engine.Tail(ctx, symbol, period, c.tail)
	} else {
		series, err = c.app.Engine.GetSeries(ctx, symbol, period)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.csvPath != "" {
		if err := writeSeriesCSV(c.csvPath, series); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Wrote %d bars to %s\n", len(series.Points), c.csvPath)
		return subcommands.ExitSuccess
	}

	fmt.Printf("%s %s: %d bars", series.Symbol, series.Period, len(series.Points))
	if series.Sampled {
		fmt.Printf(" (thinned from %d)", series.TotalRawCount)
	}
	fmt.Println()
	fmt.Printf("%-12s %10s %10s %10s %10s %12s\n", "DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME")
	for _, p := range series.Points {
		fmt.Printf("%-12s %10.2f %10.2f %10.2f %10.2f %12.0f\n",
			p.Time.Format("2006-01-02"), p.Open, p.High, p.Low, p.Close, p.Volume)
	}
	return subcommands.ExitSuccess
}

func writeSeriesCSV(path string, series *model.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range series.Points {
		rec := []string{
			p.Time.Format("2006-01-02"),
			strconv.FormatFloat(p.Open, 'f', -1, 64),
			strconv.FormatFloat(p.High, 'f', -1, 64),
			strconv.FormatFloat(p.Low, 'f', -1, 64),
			strconv.FormatFloat(p.Close, 'f', -1, 64),
			strconv.FormatFloat(p.Volume, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
