package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskslip/internal/config"
	"taskslip/internal/exitcode"
	"taskslip/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskslip` (no args) and `taskslip list`.
type ListCmd struct {
	long bool
}

// SetLong enables id and timestamp output (for testing).
func (c *ListCmd) SetLong(long bool) {
	c.long = long
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskslip list [--long]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.long, "long", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := env.App.GetTasks(ctx)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.Count(0))
		}
		return exitcode.Success
	}

	for i, t := range tasks {
		if c.long {
			output.FormatTaskVerbose(out, i+1, t)
		} else {
			output.FormatTask(out, i+1, t)
		}
	}
	return exitcode.Success
}
