package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"anitrack/internal/config"
	"anitrack/internal/logger"
)

func main() {
	app := &cli.App{
		Name:  "anitrack",
		Usage: "Read list tracker backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Load environment variables from this file first",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			genSecretCmd(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "anitrack:", err)
		os.Exit(1)
	}
}

// setup loads the env file and configuration and builds the logger.
func setup(c *cli.Context) (*config.Config, *slog.Logger, error) {
	if err := config.LoadEnvFile(c.String("env-file")); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return nil, nil, err
	}
	log := logger.Load(cfg.LogLevel, cfg.Production())
	slog.SetDefault(log)
	return cfg, log, nil
}
