package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"taskslip/internal/config"
	"taskslip/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskslip help" }
func (c *HelpCmd) NeedsStore() bool  { return false }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  taskslip                   List tasks")

	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	for _, cmd := range DefaultRegistry.All() {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (also: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), synopsis)
	}
	tw.Flush()

	fmt.Fprint(out, commonFlagsHelp)
	return exitcode.Success
}

const commonFlagsHelp = `
Tasks are referenced by list number (see 'taskslip list') or by id prefix.

Common flags:
  --dir <dir>          Override data directory (env TASKSLIP_DIR)
  --store <backend>    Task store: json (default) or sqlite
  --printer <backend>  Printer: lpr (default) or pdf
  --print-cmd <cmd>    Line-printer command (env TASKSLIP_PRINT_CMD, default lpr)
  --delay <duration>   Pause between print jobs (default 2s)
  --quiet              Suppress informational output
  --debug              Print debug logs to stderr
`
