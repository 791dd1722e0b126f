package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"TickerDesk/internal/tracker"
)

type trackCmd struct {
	app *App

	workers int
	now     bool
}

// NewTrackCmd runs the background price tracker.
func NewTrackCmd(app *App) subcommands.Command { return &trackCmd{app: app} }

func (*trackCmd) Name() string     { return "track" }
func (*trackCmd) Synopsis() string { return "run the background price tracker" }
func (*trackCmd) Usage() string {
	return `track [-workers N] [-now]

  Runs until interrupted, refreshing quotes for every watched and held
  symbol on the configured schedule and recording price snapshots. -now
  forces one refresh immediately on startup.
`
}

func (c *trackCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.workers, "workers", 0, "concurrent quote fetches per refresh (default 4)")
	f.BoolVar(&c.now, "now", false, "run one refresh immediately on startup")
}

func (c *trackCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := c.app.Store(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tr := tracker.New(ctx, st, c.app.Engine, c.app.Engine, c.workers)
	if err := tr.Register(c.app.Config.Schedule.RefreshCron, c.app.Config.Schedule.PurgeCron); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.now {
		if err := tr.RefreshNow(); err != nil {
			log.Printf("[WARN] Initial refresh failed: %v", err)
		}
	}

	tr.Start()
	log.Printf("[INFO] Tracker running (refresh %q, purge %q)",
		c.app.Config.Schedule.RefreshCron, c.app.Config.Schedule.PurgeCron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("[INFO] Received signal %v, shutting down", sig)
	case <-ctx.Done():
		log.Printf("[INFO] Context cancelled, shutting down")
	}

	tr.Stop()
	return subcommands.ExitSuccess
}
