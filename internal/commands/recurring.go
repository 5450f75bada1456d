package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskslip/internal/config"
	"taskslip/internal/exitcode"
	"taskslip/internal/output"
)

func init() {
	Register(&RecurringCmd{})
}

// RecurringCmd implements the recurring command.
type RecurringCmd struct{}

func (c *RecurringCmd) Name() string      { return "recurring" }
func (c *RecurringCmd) Aliases() []string { return []string{"rec"} }
func (c *RecurringCmd) Synopsis() string  { return "Mark a task recurring or one-off" }
func (c *RecurringCmd) Usage() string     { return "taskslip recurring <ref> [on|off]" }
func (c *RecurringCmd) NeedsStore() bool  { return true }
func (c *RecurringCmd) NeedsAuth() bool   { return false }

func (c *RecurringCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RecurringCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return refError(errOut, err)
	}

	flagValue := true
	if len(args) > 1 {
		flagValue, err = parseOnOff(args[1])
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	if len(args) > 2 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[2])
		return exitcode.UserError
	}

	t, pos, err := ResolveTaskRef(env.App.GetTasks(ctx), ref)
	if err != nil {
		return refError(errOut, err)
	}

	updated, err := env.App.UpdateTaskRecurring(ctx, t.ID, flagValue)
	if err != nil {
		return storeError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, pos, updated)
	}
	return exitcode.Success
}

// parseOnOff accepts on/off in addition to strconv.ParseBool forms.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid recurring value: %s (want on or off)", s)
	}
	return v, nil
}
