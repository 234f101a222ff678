package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/LdDl/bubbles-go/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (defaults are used when empty)")
	input := flag.String("input", "", "Input video, overrides configuration")
	output := flag.String("output", "", "Annotated output video, overrides configuration")
	logPath := flag.String("log", "", "Tab separated position log, overrides configuration")
	dbPath := flag.String("db", "", "SQLite database to store positions in, overrides configuration")
	plotPath := flag.String("plot", "", "Trajectory plot image, overrides configuration")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Error("can't load configuration", "error", err)
			os.Exit(1)
		}
	}
	overrides := []struct {
		value string
		dst   *string
	}{
		{*input, &cfg.Input.Video},
		{*output, &cfg.Output.Video},
		{*logPath, &cfg.Output.Log},
		{*dbPath, &cfg.Output.Database},
		{*plotPath, &cfg.Output.Plot},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.dst = o.value
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("tracking failed", "error", err)
		os.Exit(1)
	}
}
