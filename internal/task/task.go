// Package task defines the task record and the storage interface.
package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the format of CreatedAt (UTC, millisecond precision).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrNotFound is returned when no task has the requested id.
var ErrNotFound = errors.New("task not found")

// Task represents a single task item.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Recurring bool   `json:"recurring"`
	CreatedAt string `json:"createdAt"`
}

// New creates a one-off task with a fresh time-ordered id.
func New(text string, now time.Time) (Task, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:        id.String(),
		Text:      text,
		Recurring: false,
		CreatedAt: now.UTC().Format(TimeLayout),
	}, nil
}

// Store defines the interface for task persistence.
// Commands and the UI never touch the backing file directly.
type Store interface {
	// Initialize makes sure the backing storage exists.
	// Safe to call on every startup.
	Initialize(ctx context.Context) error

	// List returns all tasks in insertion order.
	// Unreadable or corrupt storage yields an empty slice, never an error.
	List(ctx context.Context) []Task

	// Add appends a new task and persists the list.
	Add(ctx context.Context, text string) (Task, error)

	// Delete removes the task with the given id.
	// Returns false with a nil error if no such task exists.
	Delete(ctx context.Context, id string) (bool, error)

	// SetRecurring updates the recurring flag.
	// Returns ErrNotFound if no such task exists.
	SetRecurring(ctx context.Context, id string, recurring bool) (Task, error)
}
