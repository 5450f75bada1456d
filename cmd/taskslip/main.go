// Package main is the entry point for the taskslip CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskslip/internal/app"
	"taskslip/internal/backend/googletasks"
	"taskslip/internal/cli"
	"taskslip/internal/commands"
	"taskslip/internal/config"
	"taskslip/internal/remote"
)

func main() {
	// Cancel on interrupt so a print run stops between jobs
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	openRemote := func(ctx context.Context, cfg *config.Config) (remote.Source, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, app.Open, openRemote)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
