package testutil

import (
	"context"
	"strings"

	"taskslip/internal/remote"
)

// FakeRemote is an in-memory implementation of remote.Source for testing.
type FakeRemote struct {
	lists []remote.TaskList
	tasks map[string][]remote.Task

	// ListErr fails every call when set.
	ListErr error
}

// NewFakeRemote creates a FakeRemote with a default list "My Tasks"
// whose id is "@default".
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		lists: []remote.TaskList{{ID: "@default", Title: "My Tasks", IsDefault: true}},
		tasks: make(map[string][]remote.Task),
	}
}

// AddList adds a non-default list.
func (f *FakeRemote) AddList(id, title string) {
	f.lists = append(f.lists, remote.TaskList{ID: id, Title: title})
}

// AddTask adds an open task to a list.
func (f *FakeRemote) AddTask(listID, id, title string) {
	f.tasks[listID] = append(f.tasks[listID], remote.Task{ID: id, Title: title, Status: remote.StatusNeedsAction})
}

// AddCompletedTask adds a completed task to a list.
func (f *FakeRemote) AddCompletedTask(listID, id, title string) {
	f.tasks[listID] = append(f.tasks[listID], remote.Task{ID: id, Title: title, Status: remote.StatusCompleted})
}

// ResolveList implements remote.Source.
func (f *FakeRemote) ResolveList(ctx context.Context, name string) (remote.TaskList, error) {
	if f.ListErr != nil {
		return remote.TaskList{}, f.ListErr
	}
	if strings.TrimSpace(name) == "" {
		return f.lists[0], nil
	}
	return remote.MatchList(f.lists, name)
}

// ListOpenTasks implements remote.Source.
func (f *FakeRemote) ListOpenTasks(ctx context.Context, listID string) ([]remote.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]remote.Task(nil), f.tasks[listID]...), nil
}
