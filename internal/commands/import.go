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
	"taskslip/internal/remote"
)

func init() {
	Register(&ImportCmd{})
}

// ImportCmd implements the import command.
// It copies open Google Tasks into the local list once; nothing is written
// back to Google.
type ImportCmd struct {
	listName string
}

// SetListName sets the remote list name (for testing).
func (c *ImportCmd) SetListName(name string) {
	c.listName = name
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Copy open Google Tasks into the list" }
func (c *ImportCmd) Usage() string     { return "taskslip import [--list <list-name>]" }
func (c *ImportCmd) NeedsStore() bool  { return true }
func (c *ImportCmd) NeedsAuth() bool   { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list, err := env.Remote.ResolveList(ctx, c.listName)
	if err != nil {
		return remoteError(errOut, err)
	}

	remoteTasks, err := env.Remote.ListOpenTasks(ctx, list.ID)
	if err != nil {
		return remoteError(errOut, err)
	}

	// Skip texts already in the list so repeated imports don't duplicate.
	existing := make(map[string]bool)
	for _, t := range env.App.GetTasks(ctx) {
		existing[t.Text] = true
	}

	imported, skipped := 0, 0
	for _, rt := range remoteTasks {
		text := strings.TrimSpace(rt.Title)
		if rt.Status == remote.StatusCompleted || text == "" || existing[text] {
			skipped++
			continue
		}
		if _, err := env.App.AddTask(ctx, text); err != nil {
			return storeError(errOut, err)
		}
		existing[text] = true
		imported++
		env.Logger.Debug("imported task", "remote_id", rt.ID, "text", text)
	}

	if !cfg.Quiet {
		from := list.Title
		if list.IsDefault {
			from += " (default list)"
		}
		fmt.Fprintf(out, "ok: imported %d, skipped %d from %s\n", imported, skipped, from)
	}
	return exitcode.Success
}

func remoteError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, remote.ErrListNotFound), errors.Is(err, remote.ErrAmbiguousList):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, remote.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
