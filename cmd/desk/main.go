package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"TickerDesk/internal/cli"
	"TickerDesk/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("[FATAL] init: %v", err)
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(cli.NewSearchCmd(app), "lookup")
	subcommands.Register(cli.NewQuoteCmd(app), "lookup")
	subcommands.Register(cli.NewHistoryCmd(app), "lookup")
	subcommands.Register(cli.NewCatalogCmd(app), "lookup")

	subcommands.Register(cli.NewWatchCmd(app), "tracking")
	subcommands.Register(cli.NewUnwatchCmd(app), "tracking")
	subcommands.Register(cli.NewWatchlistCmd(app), "tracking")
	subcommands.Register(cli.NewTrackCmd(app), "tracking")

	subcommands.Register(cli.NewBuyCmd(app), "portfolio")
	subcommands.Register(cli.NewPortfolioCmd(app), "portfolio")

	flag.Parse()
	status := subcommands.Execute(context.Background())
	app.Close()
	os.Exit(int(status))
}
