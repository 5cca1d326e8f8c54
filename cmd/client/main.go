package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"BrainrotDex/internal/cli/commands"
	"BrainrotDex/internal/config"
)

// задаются через -ldflags "-X main.version=... -X main.buildDate=..."
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	os.Exit(run())
}

// run отделён от main, чтобы отложенные вызовы отработали до os.Exit.
func run() int {
	cfg := config.NewConfig()
	if cfg.Version {
		fmt.Fprintf(commands.Out, "brainrots %s (built %s, %s)\n", version, buildDate, runtime.Version())
		return 0
	}

	// Ctrl+C прерывает запросы к внешнему API
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return commands.Dispatch(ctx, cfg, flag.Args())
}
