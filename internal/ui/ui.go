// Package ui implements the interactive terminal UI.
//
// Model is the view-model: it owns the cached task slice and only ever
// replaces it with what the App returns after an action.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskslip/internal/app"
	"taskslip/internal/output"
	"taskslip/internal/task"
	"taskslip/internal/workflow"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modePrinting
)

// progressMsg reports one printed ticket.
type progressMsg workflow.Progress

// printDoneMsg ends a print run.
type printDoneMsg struct {
	res workflow.Result
	err error
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx    context.Context
	app    *app.App
	tasks  []task.Task
	cursor int
	mode   mode
	input  textinput.Model
	status string
	events <-chan tea.Msg

	// quitting is set when quit was pressed during a print run; the
	// program exits once the run reports done.
	quitting bool
}

// New creates a model and loads the current tasks.
func New(ctx context.Context, a *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a new task..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		ctx:    ctx,
		app:    a,
		input:  ti,
		status: "Press 'a' to add, space to toggle recurring, 'd' to delete, 'p' to print.",
	}
	m.reload()
	return m
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	program := tea.NewProgram(New(ctx, a), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Tasks returns the cached task list.
func (m Model) Tasks() []task.Task { return m.tasks }

// Status returns the current status line.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modePrinting:
			if k := msg.String(); k == "ctrl+c" || k == "q" {
				m.quitting = true
				m.status = "Finishing the print run before quitting..."
			}
			return m, nil
		}
		return m.updateListMode(msg.String())
	case progressMsg:
		m.reload()
		if !m.quitting {
			m.status = fmt.Sprintf("Printed task %d. %s left.", msg.Number, output.Count(msg.Remaining))
		}
		return m, waitForEvent(m.events)
	case printDoneMsg:
		m.events = nil
		m.mode = modeList
		m.reload()
		m.status = printStatus(msg.res, msg.err)
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			// Blank input is ignored, like the add button.
			return m, nil
		}
		if _, err := m.app.AddTask(m.ctx, text); err != nil {
			m.status = "Failed to add task. Please try again."
			return m, nil
		}
		m.reload()
		m.cursor = clampCursor(len(m.tasks)-1, len(m.tasks))
		m.input.SetValue("")
		m.status = "Added task"
		// Stay in add mode for the next entry.
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case "a":
		m.mode = modeAdd
		m.input.Focus()
		m.status = "Type a task and press Enter (Esc to finish)"
	case " ", "r":
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		updated, err := m.app.UpdateTaskRecurring(m.ctx, t.ID, !t.Recurring)
		if err != nil {
			m.status = "Failed to update task. Please try again."
			return m, nil
		}
		m.tasks[m.cursor] = updated
		m.status = "Updated task"
	case "d":
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		ok, err := m.app.DeleteTask(m.ctx, t.ID)
		if err != nil {
			m.status = "Failed to delete task. Please try again."
			return m, nil
		}
		m.reload()
		if ok {
			m.status = "Deleted task"
		}
	case "p":
		if len(m.tasks) == 0 {
			m.status = "No tasks to print!"
			return m, nil
		}
		return m.startPrint()
	}
	return m, nil
}

// startPrint runs the print workflow in the background and feeds its
// progress back to Update through a channel.
func (m Model) startPrint() (tea.Model, tea.Cmd) {
	events := make(chan tea.Msg, 1)
	ctx, a := m.ctx, m.app
	go func() {
		defer close(events)
		res, err := a.PrintAll(ctx, func(p workflow.Progress) {
			events <- progressMsg(p)
		})
		events <- printDoneMsg{res: res, err: err}
	}()

	m.mode = modePrinting
	m.events = events
	m.status = "Printing..."
	return m, waitForEvent(events)
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func printStatus(res workflow.Result, err error) string {
	var jobErr *workflow.JobError
	switch {
	case err == nil:
		return fmt.Sprintf("All tasks printed successfully (%d printed, %d deleted)", res.Printed, res.Deleted)
	case errors.Is(err, workflow.ErrNothingToPrint):
		return "No tasks to print!"
	case errors.As(err, &jobErr):
		return fmt.Sprintf("Failed to print task %d. Stopping print job.", jobErr.Number)
	case errors.Is(err, workflow.ErrSummary):
		return "Tasks printed, but the summary ticket failed."
	default:
		return "Error printing task list. Please try again."
	}
}

func (m *Model) reload() {
	m.tasks = m.app.GetTasks(m.ctx)
	m.cursor = clampCursor(m.cursor, len(m.tasks))
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("taskslip\n")
	b.WriteString(output.Count(len(m.tasks)))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("  No tasks yet. Add your first task to get started!\n")
	}
	for i, t := range m.tasks {
		cursor := " "
		if i == m.cursor && m.mode != modeAdd {
			cursor = ">"
		}
		check := "[ ]"
		if t.Recurring {
			check = "[x]"
		}
		fmt.Fprintf(&b, "%s %s %s\n", cursor, check, t.Text)
	}

	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString("[x] = recurring   a add  space recurring  d delete  p print  q quit\n")
	return b.String()
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
