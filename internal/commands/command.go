// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"taskslip/internal/app"
	"taskslip/internal/config"
	"taskslip/internal/remote"
)

// Env carries the collaborators a command may need.
type Env struct {
	// App is set if NeedsStore() returns true.
	App *app.App

	// Remote is set if NeedsAuth() returns true.
	Remote remote.Source

	// Logger is always set.
	Logger *slog.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or writes tasks.
	NeedsStore() bool

	// NeedsAuth returns true if the command talks to Google Tasks.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (data dir, paths).
	// env.App is nil if NeedsStore() returns false; env.Remote is nil if
	// NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int
}
