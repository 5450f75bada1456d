package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskslip/internal/config"
	"taskslip/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskslip rm <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }
func (c *RmCmd) NeedsAuth() bool   { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return refError(errOut, err)
	}

	t, _, err := ResolveTaskRef(env.App.GetTasks(ctx), ref)
	if err != nil {
		return refError(errOut, err)
	}

	ok, err := env.App.DeleteTask(ctx, t.ID)
	if err != nil {
		return storeError(errOut, err)
	}
	if !ok {
		// Removed between listing and deleting.
		fmt.Fprintf(errOut, "error: task not found: %s\n", ref.Raw)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
