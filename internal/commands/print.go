package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskslip/internal/config"
	"taskslip/internal/exitcode"
	"taskslip/internal/output"
	"taskslip/internal/workflow"
)

func init() {
	Register(&PrintCmd{})
}

// PrintCmd implements the print command.
// Without arguments it prints every task as its own ticket; with arguments
// it prints the joined text as a single ticket and leaves the list alone.
type PrintCmd struct{}

func (c *PrintCmd) Name() string      { return "print" }
func (c *PrintCmd) Aliases() []string { return nil }
func (c *PrintCmd) Synopsis() string  { return "Print tasks as tickets" }
func (c *PrintCmd) Usage() string     { return "taskslip print [<text...>]" }
func (c *PrintCmd) NeedsStore() bool  { return true }
func (c *PrintCmd) NeedsAuth() bool   { return false }

func (c *PrintCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PrintCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return c.printText(ctx, cfg, env, strings.Join(args, " "), out, errOut)
	}

	res, err := env.App.PrintAll(ctx, func(p workflow.Progress) {
		if cfg.Quiet {
			return
		}
		fmt.Fprintf(errOut, "printed task %d: %s (%s left)\n", p.Number, p.Task.Text, output.Count(p.Remaining))
	})

	var jobErr *workflow.JobError
	switch {
	case err == nil:
	case errors.Is(err, workflow.ErrNothingToPrint):
		fmt.Fprintln(errOut, "error: nothing to print")
		return exitcode.UserError
	case errors.As(err, &jobErr):
		fmt.Fprintf(errOut, "error: failed to print task %d, stopping print job: %v\n", jobErr.Number, jobErr.Err)
		return exitcode.PrintError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.PrintError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.PrintError
	}

	if res.DeleteFailures > 0 {
		fmt.Fprintf(errOut, "warning: %d printed tasks could not be deleted\n", res.DeleteFailures)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok: printed %d, deleted %d\n", res.Printed, res.Deleted)
	}
	return exitcode.Success
}

func (c *PrintCmd) printText(ctx context.Context, cfg *config.Config, env *Env, text string, out, errOut io.Writer) int {
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: nothing to print")
		return exitcode.UserError
	}
	if err := env.App.Print(ctx, text); err != nil {
		fmt.Fprintf(errOut, "error: print failed: %v\n", err)
		return exitcode.PrintError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
