// Package jsonstore implements task.Store on top of a single JSON file.
//
// Every mutation rewrites the whole file. The store is meant for a single
// process; the mutex only orders calls made from within that process.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"taskslip/internal/task"
)

// Store implements task.Store backed by a JSON array file.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// New creates a store for the file at path.
// A nil logger discards log output.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock replaces the time source (for testing).
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Initialize implements task.Store.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	s.logger.Debug("creating task file", "path", s.path)
	return os.WriteFile(s.path, []byte("[]"), 0600)
}

// List implements task.Store.
func (s *Store) List(ctx context.Context) []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Add implements task.Store.
func (s *Store) Add(ctx context.Context, text string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := task.New(text, s.now())
	if err != nil {
		return task.Task{}, fmt.Errorf("generate task id: %w", err)
	}

	tasks := append(s.read(), t)
	if err := s.write(tasks); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Delete implements task.Store.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.read()
	kept := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false, nil
	}

	if err := s.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

// SetRecurring implements task.Store.
func (s *Store) SetRecurring(ctx context.Context, id string, recurring bool) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.read()
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i].Recurring = recurring
		if err := s.write(tasks); err != nil {
			return task.Task{}, err
		}
		return tasks[i], nil
	}
	return task.Task{}, task.ErrNotFound
}

// read loads the task file. Any failure is logged and yields an empty list.
func (s *Store) read() []task.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error("error reading tasks", "path", s.path, "err", err)
		return []task.Task{}
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Error("error reading tasks", "path", s.path, "err", err)
		return []task.Task{}
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks
}

// write replaces the task file with the pretty-printed list.
// The data goes to a temp file in the same directory first, then renamed.
func (s *Store) write(tasks []task.Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tasks-*.json")
	if err != nil {
		s.logger.Error("error writing tasks", "path", s.path, "err", err)
		return fmt.Errorf("write tasks: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		s.logger.Error("error writing tasks", "path", s.path, "err", err)
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		s.logger.Error("error writing tasks", "path", s.path, "err", err)
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		s.logger.Error("error writing tasks", "path", s.path, "err", err)
		return fmt.Errorf("write tasks: %w", err)
	}

	s.logger.Debug("tasks written", "path", s.path, "count", len(tasks))
	return nil
}
