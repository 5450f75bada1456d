package commands

import (
	"errors"
	"fmt"
	"io"

	"taskslip/internal/exitcode"
	"taskslip/internal/task"
)

// refError reports a failed task reference lookup.
func refError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) {
		fmt.Fprintln(errOut, "error: task reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

// storeError reports a failed store write. A task that vanished between
// lookup and update is a user error, not a store failure.
func storeError(errOut io.Writer, err error) int {
	if errors.Is(err, task.ErrNotFound) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: store error: %v\n", err)
	return exitcode.StoreError
}
