// Package sqlitestore implements task.Store on an embedded SQLite database.
// It is the multi-process-safe alternative to jsonstore.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"taskslip/internal/task"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT    NOT NULL UNIQUE,
	text       TEXT    NOT NULL,
	recurring  INTEGER NOT NULL DEFAULT 0,
	created_at TEXT    NOT NULL
)`

// Store implements task.Store backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// New opens (lazily) the database at path.
// A nil logger discards log output.
func New(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)

	return &Store{
		db:     db,
		path:   path,
		logger: logger,
		now:    time.Now,
	}, nil
}

// SetClock replaces the time source (for testing).
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize implements task.Store.
func (s *Store) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		if isCorrupt(err) {
			// Like an unreadable tasks.json: List reads as empty and
			// writes fail until the file is replaced.
			s.logger.Error("error reading tasks", "path", s.path, "err", err)
			return nil
		}
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// isCorrupt reports whether err means the file is not a usable database.
func isCorrupt(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	}
	return false
}

// List implements task.Store.
func (s *Store) List(ctx context.Context) []task.Task {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, recurring, created_at FROM tasks ORDER BY seq`)
	if err != nil {
		s.logger.Error("error reading tasks", "path", s.path, "err", err)
		return []task.Task{}
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Recurring, &t.CreatedAt); err != nil {
			s.logger.Error("error reading tasks", "path", s.path, "err", err)
			return []task.Task{}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("error reading tasks", "path", s.path, "err", err)
		return []task.Task{}
	}
	return tasks
}

// Add implements task.Store.
func (s *Store) Add(ctx context.Context, text string) (task.Task, error) {
	t, err := task.New(text, s.now())
	if err != nil {
		return task.Task{}, fmt.Errorf("generate task id: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, text, recurring, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Text, t.Recurring, t.CreatedAt)
	if err != nil {
		s.logger.Error("error writing tasks", "path", s.path, "err", err)
		return task.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// Delete implements task.Store.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		s.logger.Error("error writing tasks", "path", s.path, "err", err)
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return n > 0, nil
}

// SetRecurring implements task.Store.
func (s *Store) SetRecurring(ctx context.Context, id string, recurring bool) (task.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return task.Task{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE tasks SET recurring = ? WHERE id = ?`, recurring, id)
	if err != nil {
		s.logger.Error("error writing tasks", "path", s.path, "err", err)
		return task.Task{}, fmt.Errorf("update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return task.Task{}, task.ErrNotFound
	}

	var t task.Task
	err = tx.QueryRowContext(ctx,
		`SELECT id, text, recurring, created_at FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.Text, &t.Recurring, &t.CreatedAt)
	if err != nil {
		return task.Task{}, fmt.Errorf("read task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return task.Task{}, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}
