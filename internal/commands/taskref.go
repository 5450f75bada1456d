package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskslip/internal/task"
)

// minIDPrefix is the shortest id prefix accepted as a reference.
const minIDPrefix = 4

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Raw string // the reference as typed
	Num int    // 1-based list position, 0 if Raw is not all digits
}

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrAmbiguousRef indicates an id prefix matches more than one task.
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// ParseTaskRef parses a task reference from the first arg.
//
// Parsing rules:
// 1. No args or blank first arg → ErrTaskRefRequired
// 2. All digits → list number (also tried as an id when out of range)
// 3. Anything else → task id or id prefix
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	raw := strings.TrimSpace(args[0])
	if raw == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	ref := TaskRef{Raw: raw}
	if isAllDigits(raw) {
		num, err := strconv.Atoi(raw)
		if err == nil {
			ref.Num = num
		}
	}
	return ref, nil
}

// ResolveTaskRef finds the referenced task in tasks.
// Returns the task and its 1-based position.
func ResolveTaskRef(tasks []task.Task, ref TaskRef) (task.Task, int, error) {
	if ref.Num >= 1 && ref.Num <= len(tasks) {
		return tasks[ref.Num-1], ref.Num, nil
	}

	for i, t := range tasks {
		if t.ID == ref.Raw {
			return t, i + 1, nil
		}
	}

	if len(ref.Raw) >= minIDPrefix && ref.Num == 0 {
		match := -1
		for i, t := range tasks {
			if strings.HasPrefix(t.ID, ref.Raw) {
				if match >= 0 {
					return task.Task{}, 0, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref.Raw)
				}
				match = i
			}
		}
		if match >= 0 {
			return tasks[match], match + 1, nil
		}
	}

	return task.Task{}, 0, fmt.Errorf("%w: %s", task.ErrNotFound, ref.Raw)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
