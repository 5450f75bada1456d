package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"taskslip/internal/config"
	"taskslip/internal/printer"
	"taskslip/internal/store/jsonstore"
	"taskslip/internal/store/sqlitestore"
	"taskslip/internal/task"
)

// Open builds an App from config: it selects the store and printer
// backends and initializes the store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	return assemble(ctx, cfg, logger, store)
}

// assemble initializes store and pairs it with the configured printer.
// The store is closed if either step fails.
func assemble(ctx context.Context, cfg *config.Config, logger *slog.Logger, store task.Store) (*App, error) {
	fail := func(err error) (*App, error) {
		if c, ok := store.(io.Closer); ok {
			if cerr := c.Close(); cerr != nil && logger != nil {
				logger.Warn("failed to close store", "err", cerr)
			}
		}
		return nil, err
	}

	if err := store.Initialize(ctx); err != nil {
		return fail(fmt.Errorf("initialize store: %w", err))
	}
	prn, err := openPrinter(cfg, logger)
	if err != nil {
		return fail(err)
	}

	return New(store, prn, Options{PrintDelay: cfg.PrintDelay, Logger: logger}), nil
}

func openStore(cfg *config.Config, logger *slog.Logger) (task.Store, error) {
	switch cfg.Store {
	case config.StoreJSON, "":
		return jsonstore.New(cfg.TasksPath(), logger), nil
	case config.StoreSQLite:
		return sqlitestore.New(cfg.DBPath(), logger)
	default:
		return nil, fmt.Errorf("unknown store: %s", cfg.Store)
	}
}

func openPrinter(cfg *config.Config, logger *slog.Logger) (printer.Printer, error) {
	switch cfg.Printer {
	case config.PrinterLPR, "":
		cmdline := cfg.PrintCommand
		if cmdline == "" {
			cmdline = printer.DefaultCommand
		}
		return printer.NewCommand(cmdline, logger)
	case config.PrinterPDF:
		return printer.NewPDF(cfg.TicketsPath()), nil
	default:
		return nil, fmt.Errorf("unknown printer: %s", cfg.Printer)
	}
}
