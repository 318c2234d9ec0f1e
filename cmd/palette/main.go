package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"palette-studio/internal/cli"
	"palette-studio/internal/clipboard"
	"palette-studio/internal/config"
	"palette-studio/internal/ui"
)

func main() {
	_ = godotenv.Load()

	opts, err := cli.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		ui.LogStatus("error", "Failed to load configuration: "+err.Error())
		os.Exit(1)
	}
	ui.SetLevel(cfg.Env.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newWriter := func() (clipboard.Writer, error) {
		return clipboard.Detect(cfg.Env.ClipboardCmd)
	}
	if err := cli.Run(ctx, opts, cli.StartingBase(cfg), os.Stdout, newWriter); err != nil {
		ui.LogStatus("error", err.Error())
		stop()
		os.Exit(1)
	}
}
