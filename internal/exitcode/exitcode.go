// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, empty text,
	// nothing to print).
	UserError = 1

	// AuthError indicates a Google auth/config error.
	AuthError = 2

	// StoreError indicates the task store could not be read or written.
	StoreError = 3

	// PrintError indicates a print job failed.
	PrintError = 4

	// BackendError indicates a Google API/network error during import.
	BackendError = 5
)
