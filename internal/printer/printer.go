// Package printer sends ticket text to an output device.
package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// DefaultCommand is the line-printer command used when none is configured.
const DefaultCommand = "lpr"

// Printer prints one ticket per call.
// A returned error means the job failed; no distinction is made between
// an offline printer and a bad command.
type Printer interface {
	Print(ctx context.Context, content string) error
}

// Command pipes ticket text to an external command's stdin.
type Command struct {
	name   string
	args   []string
	logger *slog.Logger
}

// NewCommand parses a command line such as "lpr -P receipt".
// Arguments are split on whitespace; no shell is involved.
func NewCommand(cmdline string, logger *slog.Logger) (*Command, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, errors.New("print command is empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Command{name: fields[0], args: fields[1:], logger: logger}, nil
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Print implements Printer.
// The job fails if the command exits non-zero or writes anything to stderr.
func (c *Command) Print(ctx context.Context, content string) error {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = strings.NewReader(content + "\n")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	msg := strings.TrimSpace(stderr.String())
	if err != nil {
		c.logger.Error("print error", "cmd", c.String(), "err", err, "stderr", msg)
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", c.name, err, msg)
		}
		return fmt.Errorf("%s: %w", c.name, err)
	}
	if msg != "" {
		c.logger.Error("print error", "cmd", c.String(), "stderr", msg)
		return fmt.Errorf("%s: %s", c.name, msg)
	}

	c.logger.Debug("print job sent successfully", "cmd", c.String())
	return nil
}
