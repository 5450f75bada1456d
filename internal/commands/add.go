package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskslip/internal/app"
	"taskslip/internal/config"
	"taskslip/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	recurring bool
}

// SetRecurring marks the next added task recurring (for testing).
func (c *AddCmd) SetRecurring(recurring bool) {
	c.recurring = recurring
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "taskslip add [--recurring] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.recurring, "recurring", false, "")
	fs.BoolVar(&c.recurring, "r", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	text := strings.Join(args, " ")

	created, err := env.App.AddTask(ctx, text)
	if err != nil {
		if errors.Is(err, app.ErrEmptyText) {
			fmt.Fprintln(errOut, "error: task text required")
			return exitcode.UserError
		}
		return storeError(errOut, err)
	}

	if c.recurring {
		if _, err := env.App.UpdateTaskRecurring(ctx, created.ID, true); err != nil {
			return storeError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
