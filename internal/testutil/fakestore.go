// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskslip/internal/task"
)

// FakeStore is an in-memory implementation of task.Store for testing.
type FakeStore struct {
	mu    sync.Mutex
	tasks []task.Task
	next  int

	// Error injection for testing
	InitializeErr   error
	AddErr          error
	DeleteErr       error
	SetRecurringErr error

	// DeleteErrFor fails Delete only for the listed ids.
	DeleteErrFor map[string]error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{DeleteErrFor: make(map[string]error)}
}

// Seed appends a task with a predictable id ("t1", "t2", ...) and returns it.
func (f *FakeStore) Seed(text string, recurring bool) task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.newTask(text)
	t.Recurring = recurring
	f.tasks = append(f.tasks, t)
	return t
}

// Snapshot returns a copy of the current tasks.
func (f *FakeStore) Snapshot() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

func (f *FakeStore) newTask(text string) task.Task {
	f.next++
	return task.Task{
		ID:        fmt.Sprintf("t%d", f.next),
		Text:      text,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, f.next, 0, time.UTC).Format(task.TimeLayout),
	}
}

// Initialize implements task.Store.
func (f *FakeStore) Initialize(ctx context.Context) error {
	return f.InitializeErr
}

// List implements task.Store.
func (f *FakeStore) List(ctx context.Context) []task.Task {
	return f.Snapshot()
}

// Add implements task.Store.
func (f *FakeStore) Add(ctx context.Context, text string) (task.Task, error) {
	if f.AddErr != nil {
		return task.Task{}, f.AddErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.newTask(text)
	f.tasks = append(f.tasks, t)
	return t, nil
}

// Delete implements task.Store.
func (f *FakeStore) Delete(ctx context.Context, id string) (bool, error) {
	if f.DeleteErr != nil {
		return false, f.DeleteErr
	}
	if err, ok := f.DeleteErrFor[id]; ok && err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// SetRecurring implements task.Store.
func (f *FakeStore) SetRecurring(ctx context.Context, id string, recurring bool) (task.Task, error) {
	if f.SetRecurringErr != nil {
		return task.Task{}, f.SetRecurringErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Recurring = recurring
			return f.tasks[i], nil
		}
	}
	return task.Task{}, task.ErrNotFound
}
