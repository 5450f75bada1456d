// Package workflow prints the task list, one ticket per task.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"taskslip/internal/printer"
	"taskslip/internal/task"
)

// DefaultDelay is the pause after each job so the printer separates tickets.
const DefaultDelay = 2 * time.Second

var (
	// ErrNothingToPrint is returned when the task list is empty.
	ErrNothingToPrint = errors.New("nothing to print")

	// ErrSummary is returned when every task printed but the summary ticket failed.
	ErrSummary = errors.New("failed to print summary ticket")
)

// JobError reports the task whose print job failed and stopped the run.
type JobError struct {
	// Number is the 1-based position in processing order.
	Number int
	Task   task.Task
	Err    error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("failed to print task %d: %v", e.Number, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }

// SummaryText is the closing ticket printed after a complete run.
func SummaryText(count int) string {
	return fmt.Sprintf("Hello you,\n%d things to do today.\nLet's do it", count)
}

// Progress is reported after each successful job.
type Progress struct {
	Number    int
	Task      task.Task
	Deleted   bool
	Remaining int
}

// Result summarizes a print run, complete or not.
type Result struct {
	// Count is the number of tasks when the run started.
	Count          int
	Printed        int
	Deleted        int
	DeleteFailures int
	SummaryPrinted bool
}

// Runner drives a print run against a store and a printer.
type Runner struct {
	Store   task.Store
	Printer printer.Printer

	// Delay is the pause after each task job. Zero means no pause.
	Delay time.Duration

	// Sleep waits for d or until ctx is done. Nil uses a timer.
	Sleep func(ctx context.Context, d time.Duration) error

	Logger *slog.Logger

	// OnProgress, if set, is called after each successful job.
	OnProgress func(Progress)
}

// Run prints every task in reverse list order, deleting non-recurring tasks
// once their ticket printed. The first failed job aborts the run; tasks not
// yet attempted are left untouched and no summary is printed.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sleep := r.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	tasks := r.Store.List(ctx)
	if len(tasks) == 0 {
		return Result{}, ErrNothingToPrint
	}

	res := Result{Count: len(tasks)}
	for i := len(tasks) - 1; i >= 0; i-- {
		t := tasks[i]
		number := len(tasks) - i

		if err := r.Printer.Print(ctx, t.Text); err != nil {
			logger.Error("failed to print task", "number", number, "id", t.ID, "err", err)
			return res, &JobError{Number: number, Task: t, Err: err}
		}
		res.Printed++

		deleted := false
		if !t.Recurring {
			ok, err := r.Store.Delete(ctx, t.ID)
			if err != nil {
				logger.Error("failed to delete printed task", "id", t.ID, "err", err)
				res.DeleteFailures++
			} else if ok {
				deleted = true
				res.Deleted++
			}
		}
		logger.Debug("task printed", "number", number, "id", t.ID, "deleted", deleted)

		if r.OnProgress != nil {
			r.OnProgress(Progress{
				Number:    number,
				Task:      t,
				Deleted:   deleted,
				Remaining: res.Count - res.Deleted,
			})
		}

		if err := sleep(ctx, r.Delay); err != nil {
			return res, err
		}
	}

	if err := r.Printer.Print(ctx, SummaryText(res.Count)); err != nil {
		logger.Error("failed to print summary", "err", err)
		return res, fmt.Errorf("%w: %w", ErrSummary, err)
	}
	res.SummaryPrinted = true

	logger.Debug("all tasks printed successfully", "count", res.Count)
	return res, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
