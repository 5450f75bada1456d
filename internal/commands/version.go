package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"taskslip/internal/config"
	"taskslip/internal/exitcode"
)

// Version is the application version. Override with
// -ldflags "-X taskslip/internal/commands.Version=...".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct {
	verbose bool
}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "taskslip version [--verbose]" }
func (c *VersionCmd) NeedsStore() bool  { return false }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "taskslip %s\n", Version)
	if !c.verbose {
		return exitcode.Success
	}

	fmt.Fprintf(out, "data dir: %s\n", cfg.Dir)
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintf(out, "go: %s\n", info.GoVersion)
		for _, dep := range info.Deps {
			fmt.Fprintf(out, "  %s %s\n", dep.Path, dep.Version)
		}
	}
	return exitcode.Success
}
