// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskslip/internal/task"
)

// RecurringMark prefixes recurring tasks in listings.
const RecurringMark = "[r] "

// FormatTask formats a task line for the list.
// Format: "{N:>4}  [r] {TEXT}\n" (the marker only for recurring tasks)
func FormatTask(w io.Writer, num int, t task.Task) {
	mark := ""
	if t.Recurring {
		mark = RecurringMark
	}
	fmt.Fprintf(w, "%4d  %s%s\n", num, mark, normalizeText(t.Text))
}

// FormatTaskVerbose formats a task line including its id and creation time.
func FormatTaskVerbose(w io.Writer, num int, t task.Task) {
	mark := ""
	if t.Recurring {
		mark = RecurringMark
	}
	fmt.Fprintf(w, "%4d  %s%s\n      id: %s  created: %s\n", num, mark, normalizeText(t.Text), t.ID, t.CreatedAt)
}

// Count returns the task count line shown under the list.
func Count(n int) string {
	switch n {
	case 0:
		return "No tasks yet"
	case 1:
		return "1 task"
	default:
		return fmt.Sprintf("%d tasks", n)
	}
}

// normalizeText normalizes a task text for single-line display.
// - Empty or whitespace-only texts become "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
