package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"palette-studio/internal/config"
	"palette-studio/internal/server"
	"palette-studio/internal/ui"
)

const version = "v1.0.0"

func main() {
	// Load .env file if it exists; the process environment still wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}
	ui.SetLevel(cfg.Env.LogLevel)
	ui.EmitBanner(version, "Harmonic palettes and shades", cfg.Base())

	ui.LogGroup("Configuration")
	ui.LogGroupItem("Environment", cfg.Env.Env.String())
	if cfg.Source != "" {
		ui.LogGroupItem("Config file", cfg.Source)
	}
	ui.LogGroupItem("Base color", cfg.DefaultBase)
	ui.LogGroupItem("Session TTL", strconv.Itoa(cfg.SessionTTLMin)+"m")
	ui.LogGroupEnd()

	if err := cfg.Validate(); err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.MetricsListen != "" {
		metrics := server.NewMetricsServer(cfg.MetricsListen)
		metrics.Start()
		ui.LogStatus("info", "Metrics: http://localhost"+cfg.MetricsListen+"/metrics")

		go func() {
			<-ctx.Done()
			ui.LogGracefulShutdown()
			metrics.Shutdown(context.Background())
		}()
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		ui.LogStatus("error", "Server setup failed: "+err.Error())
		os.Exit(1)
	}
	if err := srv.Start(ctx); err != nil {
		ui.LogStatus("error", "Server failed: "+err.Error())
		os.Exit(1)
	}
}
