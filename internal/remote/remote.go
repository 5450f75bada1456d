// Package remote defines the interface for importing tasks from an online
// task service. Commands never import a provider SDK directly.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrListNotFound is returned when no list matches a name or id.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is returned when a name matches more than one list.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrUnauthorized is returned when the stored token is rejected.
	ErrUnauthorized = errors.New("token expired or revoked (run: taskslip login)")
)

// Task is an open task on the remote service.
type Task struct {
	ID     string
	Title  string
	Status string
}

// Task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// TaskList is a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}

// Source is a read-only view of a remote task service.
type Source interface {
	// ResolveList finds a list by title, ignoring case and surrounding
	// space. An empty name resolves to the default list.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns every open task of a list in API order.
	ListOpenTasks(ctx context.Context, listID string) ([]Task, error)
}

// MatchList picks the single list whose title matches name.
func MatchList(lists []TaskList, name string) (TaskList, error) {
	name = strings.TrimSpace(name)

	var matches []TaskList
	for _, l := range lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}
	switch len(matches) {
	case 0:
		return TaskList{}, fmt.Errorf("%w: %s", ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return TaskList{}, fmt.Errorf("%w: %s", ErrAmbiguousList, name)
	}
}
