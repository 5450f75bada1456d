// Package app is the request/response surface shared by the CLI and the
// terminal UI. Neither UI touches the store or the printer directly.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"taskslip/internal/printer"
	"taskslip/internal/task"
	"taskslip/internal/workflow"
)

// ErrEmptyText is returned when a task text is empty or whitespace-only.
var ErrEmptyText = errors.New("task text required")

// Options configures an App.
type Options struct {
	// PrintDelay is the pause after each print job.
	PrintDelay time.Duration

	// Sleep overrides the delay implementation (for testing).
	Sleep func(ctx context.Context, d time.Duration) error

	Logger *slog.Logger
}

// App wires a task store to a printer.
type App struct {
	store   task.Store
	printer printer.Printer
	opts    Options
	logger  *slog.Logger
}

// New creates an App.
func New(store task.Store, prn printer.Printer, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{store: store, printer: prn, opts: opts, logger: logger}
}

// Close releases the store if it holds resources.
func (a *App) Close() error {
	if c, ok := a.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// GetTasks returns all tasks in list order.
func (a *App) GetTasks(ctx context.Context) []task.Task {
	return a.store.List(ctx)
}

// AddTask trims text and adds it as a new one-off task.
func (a *App) AddTask(ctx context.Context, text string) (task.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Task{}, ErrEmptyText
	}
	return a.store.Add(ctx, text)
}

// DeleteTask removes a task. Returns false if no task has that id.
func (a *App) DeleteTask(ctx context.Context, id string) (bool, error) {
	return a.store.Delete(ctx, id)
}

// UpdateTaskRecurring sets the recurring flag of a task.
func (a *App) UpdateTaskRecurring(ctx context.Context, id string, recurring bool) (task.Task, error) {
	return a.store.SetRecurring(ctx, id, recurring)
}

// Print sends arbitrary content as a single ticket.
func (a *App) Print(ctx context.Context, content string) error {
	return a.printer.Print(ctx, content)
}

// PrintAll runs the print workflow over the current list.
func (a *App) PrintAll(ctx context.Context, onProgress func(workflow.Progress)) (workflow.Result, error) {
	r := &workflow.Runner{
		Store:      a.store,
		Printer:    a.printer,
		Delay:      a.opts.PrintDelay,
		Sleep:      a.opts.Sleep,
		Logger:     a.logger,
		OnProgress: onProgress,
	}
	return r.Run(ctx)
}
