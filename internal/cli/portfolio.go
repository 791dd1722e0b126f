package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"TickerDesk/internal/store"
)

type buyCmd struct {
	app *App

	shares string
	price  string
	date   string
}

// NewBuyCmd records a portfolio purchase.
func NewBuyCmd(app *App) subcommands.Command { return &buyCmd{app: app} }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a portfolio purchase" }
func (*buyCmd) Usage() string {
	return `buy -shares N -price P [-date YYYY-MM-DD] <symbol>

  Records a purchase in the portfolio. Shares and price accept fractional
  values and are stored exactly.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.shares, "shares", "", "number of shares bought (fractional allowed)")
	f.StringVar(&c.price, "price", "", "purchase price per share")
	f.StringVar(&c.date, "date", "", "purchase date, YYYY-MM-DD (default today)")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: buy takes exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(strings.TrimSpace(f.Arg(0)))

	shares, err := decimal.NewFromString(c.shares)
	if err != nil || !shares.IsPositive() {
		fmt.Fprintln(os.Stderr, "Error: -shares must be a positive number")
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil || !price.IsPositive() {
		fmt.Fprintln(os.Stderr, "Error: -price must be a positive number")
		return subcommands.ExitUsageError
	}
	when := time.Now()
	if c.date != "" {
		when, err = time.Parse("2006-01-02", c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad -date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	st, err := c.app.Store(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	h := store.Holding{
		Symbol:        symbol,
		Shares:        shares,
		PurchasePrice: price,
		PurchaseDate:  when,
	}
	if err := st.AddHolding(ctx, h); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Bought %s %s @ %s on %s.\n", shares, symbol, FormatCurrency(priceFloat(price)), when.Format("2006-01-02"))
	return subcommands.ExitSuccess
}

func priceFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

type portfolioCmd struct {
	app     *App
	refresh bool
}

// NewPortfolioCmd lists holdings with value and gain.
func NewPortfolioCmd(app *App) subcommands.Command { return &portfolioCmd{app: app} }

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "list holdings with value and gain" }
func (*portfolioCmd) Usage() string {
	return `portfolio [-refresh]

  Lists portfolio holdings with cost basis, current value and gain.
  With -refresh each holding's price is updated from the data source first.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "update holding prices from the data source first")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := c.app.Store(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	holdings, err := st.Holdings(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(holdings) == 0 {
		fmt.Println("Portfolio is empty.")
		return subcommands.ExitSuccess
	}

	if c.refresh {
		seen := map[string]bool{}
		for _, h := range holdings {
			if seen[h.Symbol] {
				continue
			}
			seen[h.Symbol] = true
			q, err := c.app.Engine.Info(ctx, h.Symbol)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: refresh %s: %v\n", h.Symbol, err)
				continue
			}
			if err := st.UpdateHoldingPrice(ctx, h.Symbol, decimal.NewFromFloat(q.LastPrice)); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: update %s: %v\n", h.Symbol, err)
			}
		}
		holdings, err = st.Holdings(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("%-8s %12s %12s %12s %14s %14s %10s\n",
		"SYMBOL", "SHARES", "BUY PRICE", "CUR PRICE", "COST BASIS", "VALUE", "GAIN %")
	totalCost := decimal.Zero
	totalValue := decimal.Zero
	for _, h := range holdings {
		cost := h.CostBasis()
		value := h.Value()
		totalCost = totalCost.Add(cost)
		totalValue = totalValue.Add(value)

		gain := "N/A"
		if cost.IsPositive() {
			pct, _ := value.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100)).Float64()
			gain = fmt.Sprintf("%+.2f%%", pct)
		}
		cur := h.CurrentPrice
		if cur.IsZero() {
			cur = h.PurchasePrice
		}
		fmt.Printf("%-8s %12s %12s %12s %14s %14s %10s\n",
			h.Symbol, h.Shares.String(),
			FormatCurrency(priceFloat(h.PurchasePrice)),
			FormatCurrency(priceFloat(cur)),
			FormatCurrency(priceFloat(cost)),
			FormatCurrency(priceFloat(value)),
			gain)
	}
	totalGain := "N/A"
	if totalCost.IsPositive() {
		pct, _ := totalValue.Sub(totalCost).Div(totalCost).Mul(decimal.NewFromInt(100)).Float64()
		totalGain = fmt.Sprintf("%+.2f%%", pct)
	}
	fmt.Printf("%-8s %12s %12s %12s %14s %14s %10s\n",
		"TOTAL", "", "", "",
		FormatCurrency(priceFloat(totalCost)),
		FormatCurrency(priceFloat(totalValue)),
		totalGain)
	return subcommands.ExitSuccess
}
