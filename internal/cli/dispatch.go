// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"taskslip/internal/app"
	"taskslip/internal/commands"
	"taskslip/internal/config"
	"taskslip/internal/exitcode"
	"taskslip/internal/remote"
)

// AppFactory opens the task store and printer described by cfg.
type AppFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.App, error)

// RemoteFactory connects to the remote task service.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (remote.Source, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry   *commands.Registry
	openApp    AppFactory
	openRemote RemoteFactory
}

// NewDispatcher creates a new dispatcher. A nil openRemote makes commands
// that need Google Tasks stop after the credential checks.
func NewDispatcher(registry *commands.Registry, openApp AppFactory, openRemote RemoteFactory) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		openApp:    openApp,
		openRemote: openRemote,
	}
}

// commonFlags are accepted by every command.
type commonFlags struct {
	dir      string
	quiet    bool
	debug    bool
	store    string
	printer  string
	printCmd string
	delay    time.Duration
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.dir, "dir", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
	fs.StringVar(&f.store, "store", "", "")
	fs.StringVar(&f.printer, "printer", "", "")
	fs.StringVar(&f.printCmd, "print-cmd", "", "")
	fs.DurationVar(&f.delay, "delay", -1, "")
}

// apply overrides cfg with the flags that were set.
func (f *commonFlags) apply(cfg *config.Config) {
	cfg.Quiet = f.quiet
	cfg.Debug = f.debug
	if f.store != "" {
		cfg.Store = f.store
	}
	if f.printer != "" {
		cfg.Printer = f.printer
	}
	if f.printCmd != "" {
		cfg.PrintCommand = f.printCmd
	}
	if f.delay >= 0 {
		cfg.PrintDelay = f.delay
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> list
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A leading dash left over means a flag after "--" or a lone "-x"
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(common.dir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	common.apply(cfg)

	env := &commands.Env{Logger: newLogger(errOut, cfg.Debug)}
	env.Logger.Debug("dispatch", "command", cmd.Name(), "dir", cfg.Dir, "store", cfg.Store, "printer", cfg.Printer)

	if cmd.NeedsAuth() {
		src, code := d.connectRemote(ctx, cfg, errOut)
		if code != exitcode.Success {
			return code
		}
		env.Remote = src
	}

	if cmd.NeedsStore() {
		a, err := d.openApp(ctx, cfg, env.Logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: store error: %s\n", err)
			return exitcode.StoreError
		}
		defer func() {
			if err := a.Close(); err != nil {
				env.Logger.Warn("failed to close store", "err", err)
			}
		}()
		env.App = a
	}

	return cmd.Run(ctx, cfg, env, positionalArgs, out, errOut)
}

// connectRemote checks the Google credentials and opens the remote source.
func (d *Dispatcher) connectRemote(ctx context.Context, cfg *config.Config, errOut io.Writer) (remote.Source, int) {
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: oauth_client.json not found in %s (run: taskslip login)\n", cfg.Dir)
		return nil, exitcode.AuthError
	}
	if !cfg.HasToken() {
		fmt.Fprintln(errOut, "error: not logged in (run: taskslip login)")
		return nil, exitcode.AuthError
	}
	if d.openRemote == nil {
		fmt.Fprintln(errOut, "error: backend error: no remote backend configured")
		return nil, exitcode.BackendError
	}

	src, err := d.openRemote(ctx, cfg)
	if err != nil {
		if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return nil, exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return nil, exitcode.BackendError
	}
	return src, exitcode.Success
}

// newLogger writes text logs to errOut. Only warnings and errors are shown
// unless debug is set.
func newLogger(errOut io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
}

// flagErrorMessage rewrites flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + name
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + name
	}
	return errStr
}
