// Package config handles the per-user data directory and runtime settings.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the application directory name.
	AppName = "taskslip"

	// TasksFile is the JSON task list filename.
	TasksFile = "tasks.json"

	// TasksDB is the SQLite task database filename.
	TasksDB = "tasks.db"

	// TicketsDir holds PDF tickets when the pdf printer is selected.
	TicketsDir = "tickets"

	// OAuthClientFile is the Google OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored Google OAuth token filename.
	TokenFile = "token.json"

	// DefaultPrintDelay is the pause between print jobs.
	DefaultPrintDelay = 2 * time.Second
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Printer backends.
const (
	PrinterLPR = "lpr"
	PrinterPDF = "pdf"
)

// Environment overrides.
const (
	EnvDir      = "TASKSLIP_DIR"
	EnvPrintCmd = "TASKSLIP_PRINT_CMD"
)

// Config holds paths and settings.
type Config struct {
	// Dir is the data directory path.
	Dir string

	// Store selects the task backend: "json" or "sqlite".
	Store string

	// Printer selects the print backend: "lpr" or "pdf".
	Printer string

	// PrintCommand is the line-printer command line for the lpr backend.
	// Empty means printer.DefaultCommand.
	PrintCommand string

	// PrintDelay is the pause after each print job.
	PrintDelay time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified data directory.
// If dir is empty, uses $TASKSLIP_DIR, then XDG_DATA_HOME/taskslip or
// $HOME/.local/share/taskslip.
func New(dir string) (*Config, error) {
	if dir == "" {
		dir = os.Getenv(EnvDir)
	}
	if dir == "" {
		dir = DefaultDataDir()
	}
	return &Config{
		Dir:          dir,
		Store:        StoreJSON,
		Printer:      PrinterLPR,
		PrintCommand: os.Getenv(EnvPrintCmd),
		PrintDelay:   DefaultPrintDelay,
	}, nil
}

// DefaultDataDir returns the default data directory.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// TasksPath returns the path to the JSON task file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.Dir, TasksFile)
}

// DBPath returns the path to the SQLite task database.
func (c *Config) DBPath() string {
	return filepath.Join(c.Dir, TasksDB)
}

// TicketsPath returns the directory PDF tickets are written to.
func (c *Config) TicketsPath() string {
	return filepath.Join(c.Dir, TicketsDir)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the data directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
