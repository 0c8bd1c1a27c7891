package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rin0913/telemetry-dashboard/internal/app/dashboard"
	"github.com/Rin0913/telemetry-dashboard/internal/config"
	"github.com/Rin0913/telemetry-dashboard/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out, logOut io.Writer) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(logOut)
	configPath := fs.String("config", "", "path to the YAML config file")
	noConsole := fs.Bool("no-console", false, "do not read commands from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logging.New(cfg.Log.Level, logOut)
	if *noConsole {
		in = nil
	}

	if err := dashboard.Run(ctx, cfg, log, in, out); err != nil {
		return err
	}

	log.Info().Msg("See you!")
	return nil
}
