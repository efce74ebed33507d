// Package main содержит точку входа терминального клиента исследовательского ассистента.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/magabrotheeeer/research-assistant/internal/app"
	"github.com/magabrotheeeer/research-assistant/internal/config"
	"github.com/magabrotheeeer/research-assistant/internal/lib/sl"
)

// version задаётся при сборке: -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var showVersion bool

	flagSet := pflag.NewFlagSet("research-assistant", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config (default: $CONFIG_PATH, then environment only)")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Println("research-assistant", version)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	cfg := config.MustLoad(configPath)

	logFile, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("cannot open log file %s: %w", cfg.Log.Path, err)
	}
	defer logFile.Close()

	logger := sl.New(cfg.Env, cfg.Log.Level, logFile)
	logger.Info("starting research-assistant",
		slog.String("env", cfg.Env),
		slog.String("version", version),
		slog.String("api", cfg.API.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, logger, tea.WithAltScreen()).Run(ctx); err != nil {
		logger.Error("client stopped with error", sl.Err(err))
		return err
	}
	logger.Info("client stopped")
	return nil
}
