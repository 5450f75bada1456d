package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"taskslip/internal/app"
	"taskslip/internal/commands"
	"taskslip/internal/config"
	"taskslip/internal/exitcode"
	"taskslip/internal/remote"
	"taskslip/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noSleep(ctx context.Context, d time.Duration) error { return nil }

// fixture holds the fakes behind one command run.
type fixture struct {
	store   *testutil.FakeStore
	printer *testutil.FakePrinter
	remote  *testutil.FakeRemote
	quiet   bool
}

func newFixture() *fixture {
	return &fixture{
		store:   testutil.NewFakeStore(),
		printer: testutil.NewFakePrinter(),
		remote:  testutil.NewFakeRemote(),
	}
}

// run executes cmd against the fixture's fakes.
func (f *fixture) run(t *testing.T, cmd commands.Command, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: f.quiet,
	}
	env := &commands.Env{
		App:    app.New(f.store, f.printer, app.Options{PrintDelay: time.Second, Sleep: noSleep}),
		Remote: f.remote,
		Logger: discardLogger(),
	}

	code = cmd.Run(context.Background(), cfg, env, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := newFixture().run(t, &commands.VersionCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskslip 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := newFixture().run(t, &commands.HelpCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "taskslip print", "taskslip add", "--printer"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

func TestListCommand_Mixed(t *testing.T) {
	f := newFixture()
	f.store.Seed("Buy milk", false)
	f.store.Seed("Water plants", true)
	f.store.Seed("Call mom", false)

	stdout, stderr, code := f.run(t, &commands.ListCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_mixed", stdout)
}

func TestListCommand_Long(t *testing.T) {
	f := newFixture()
	f.store.Seed("Buy milk", false)
	f.store.Seed("Water plants", true)

	cmd := &commands.ListCmd{}
	cmd.SetLong(true)
	stdout, _, code := f.run(t, cmd)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	testutil.GoldenString(t, "list_long", stdout)
}

func TestListCommand_Empty(t *testing.T) {
	tests := []struct {
		quiet bool
		want  string
	}{
		{false, "No tasks yet\n"},
		{true, ""},
	}
	for _, tt := range tests {
		f := newFixture()
		f.quiet = tt.quiet

		stdout, stderr, code := f.run(t, &commands.ListCmd{})
		if code != exitcode.Success {
			t.Errorf("quiet=%v: expected exit code %d, got %d", tt.quiet, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("quiet=%v: expected no stderr, got %q", tt.quiet, stderr)
		}
		if stdout != tt.want {
			t.Errorf("quiet=%v: expected %q, got %q", tt.quiet, tt.want, stdout)
		}
	}
}

func TestListCommand_UnexpectedArgument(t *testing.T) {
	_, stderr, code := newFixture().run(t, &commands.ListCmd{}, "extra")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestAddCommand(t *testing.T) {
	f := newFixture()

	stdout, stderr, code := f.run(t, &commands.AddCmd{}, "Buy", "milk")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	tasks := f.store.Snapshot()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" || tasks[0].Recurring {
		t.Errorf("expected one one-off task 'Buy milk', got %+v", tasks)
	}
}

func TestAddCommand_Recurring(t *testing.T) {
	f := newFixture()
	cmd := &commands.AddCmd{}
	cmd.SetRecurring(true)

	_, _, code := f.run(t, cmd, "Water plants")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if tasks := f.store.Snapshot(); len(tasks) != 1 || !tasks[0].Recurring {
		t.Errorf("expected one recurring task, got %+v", tasks)
	}
}

func TestAddCommand_BlankText(t *testing.T) {
	for _, args := range [][]string{nil, {"   "}} {
		f := newFixture()

		stdout, stderr, code := f.run(t, &commands.AddCmd{}, args...)

		if code != exitcode.UserError {
			t.Errorf("args=%q: expected exit code %d, got %d", args, exitcode.UserError, code)
		}
		if stdout != "" {
			t.Errorf("args=%q: expected no stdout, got %q", args, stdout)
		}
		if stderr != "error: task text required\n" {
			t.Errorf("args=%q: unexpected stderr %q", args, stderr)
		}
		if len(f.store.Snapshot()) != 0 {
			t.Errorf("args=%q: expected no task added", args)
		}
	}
}

func TestAddCommand_StoreFailure(t *testing.T) {
	f := newFixture()
	f.store.AddErr = errors.New("disk full")

	_, stderr, code := f.run(t, &commands.AddCmd{}, "Buy milk")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: store error: disk full\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRmCommand(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"by number", "2"},
		{"by id", "t2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.Seed("first", false)
			f.store.Seed("second", false)

			stdout, stderr, code := f.run(t, &commands.RmCmd{}, tt.ref)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
			}
			if stdout != "ok\n" {
				t.Errorf("expected 'ok\\n', got %q", stdout)
			}
			if got := f.store.Snapshot(); len(got) != 1 || got[0].Text != "first" {
				t.Errorf("expected only 'first' to remain, got %+v", got)
			}
		})
	}
}

func TestRmCommand_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"no ref", nil, "error: task reference required\n"},
		{"out of range", []string{"5"}, "error: task not found: 5\n"},
		{"unknown id", []string{"nope"}, "error: task not found: nope\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.Seed("first", false)

			_, stderr, code := f.run(t, &commands.RmCmd{}, tt.args...)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
			if len(f.store.Snapshot()) != 1 {
				t.Error("expected task to survive")
			}
		})
	}
}

func TestRecurringCommand(t *testing.T) {
	f := newFixture()
	f.store.Seed("Buy milk", false)
	f.store.Seed("Water plants", false)

	stdout, stderr, code := f.run(t, &commands.RecurringCmd{}, "2")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "   2  [r] Water plants\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !f.store.Snapshot()[1].Recurring {
		t.Error("expected task 2 recurring")
	}

	stdout, _, code = f.run(t, &commands.RecurringCmd{}, "2", "off")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   2  Water plants\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if f.store.Snapshot()[1].Recurring {
		t.Error("expected task 2 one-off again")
	}
}

func TestRecurringCommand_BadValue(t *testing.T) {
	f := newFixture()
	f.store.Seed("Buy milk", false)

	_, stderr, code := f.run(t, &commands.RecurringCmd{}, "1", "sometimes")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid recurring value: sometimes") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if f.store.Snapshot()[0].Recurring {
		t.Error("task should be unchanged")
	}
}

func TestPrintCommand_All(t *testing.T) {
	f := newFixture()
	f.store.Seed("Buy milk", false)
	f.store.Seed("Water plants", true)

	stdout, stderr, code := f.run(t, &commands.PrintCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok: printed 2, deleted 1\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	wantProgress := "printed task 1: Water plants (2 tasks left)\nprinted task 2: Buy milk (1 task left)\n"
	if stderr != wantProgress {
		t.Errorf("expected progress %q, got %q", wantProgress, stderr)
	}

	jobs := f.printer.Jobs()
	want := []string{"Water plants", "Buy milk", "Hello you,\n2 things to do today.\nLet's do it"}
	if len(jobs) != len(want) {
		t.Fatalf("expected jobs %q, got %q", want, jobs)
	}
	for i := range want {
		if jobs[i] != want[i] {
			t.Errorf("job %d: expected %q, got %q", i, want[i], jobs[i])
		}
	}
	if got := f.store.Snapshot(); len(got) != 1 || got[0].Text != "Water plants" {
		t.Errorf("expected only the recurring task left, got %+v", got)
	}
}

func TestPrintCommand_Quiet(t *testing.T) {
	f := newFixture()
	f.quiet = true
	f.store.Seed("Buy milk", false)

	stdout, stderr, code := f.run(t, &commands.PrintCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestPrintCommand_NothingToPrint(t *testing.T) {
	f := newFixture()

	_, stderr, code := f.run(t, &commands.PrintCmd{})

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: nothing to print\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if len(f.printer.Jobs()) != 0 {
		t.Errorf("expected no print jobs, got %q", f.printer.Jobs())
	}
}

func TestPrintCommand_FailureStopsRun(t *testing.T) {
	f := newFixture()
	f.store.Seed("first", false)
	f.store.Seed("second", false)
	f.store.Seed("third", false)
	f.printer.FailCall(2)

	stdout, stderr, code := f.run(t, &commands.PrintCmd{})

	if code != exitcode.PrintError {
		t.Errorf("expected exit code %d, got %d", exitcode.PrintError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasSuffix(stderr, "error: failed to print task 2, stopping print job: printer offline\n") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	got := f.store.Snapshot()
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "second" {
		t.Errorf("expected first and second to remain, got %+v", got)
	}
}

func TestPrintCommand_DeleteFailureWarns(t *testing.T) {
	f := newFixture()
	seeded := f.store.Seed("Buy milk", false)
	f.store.DeleteErrFor[seeded.ID] = errors.New("read-only")
	f.quiet = true

	_, stderr, code := f.run(t, &commands.PrintCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "warning: 1 printed tasks could not be deleted\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestPrintCommand_Text(t *testing.T) {
	f := newFixture()
	f.store.Seed("Buy milk", false)

	stdout, _, code := f.run(t, &commands.PrintCmd{}, "Call", "mom")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if jobs := f.printer.Jobs(); len(jobs) != 1 || jobs[0] != "Call mom" {
		t.Errorf("expected a single 'Call mom' job, got %q", jobs)
	}
	if len(f.store.Snapshot()) != 1 {
		t.Error("printing text must not touch the list")
	}
}

func TestPrintCommand_TextFailure(t *testing.T) {
	f := newFixture()
	f.printer.FailCall(1)

	_, stderr, code := f.run(t, &commands.PrintCmd{}, "Call mom")

	if code != exitcode.PrintError {
		t.Errorf("expected exit code %d, got %d", exitcode.PrintError, code)
	}
	if stderr != "error: print failed: printer offline\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestImportCommand(t *testing.T) {
	f := newFixture()
	f.store.Seed("Buy milk", false)
	f.remote.AddTask("@default", "r1", "Buy milk")
	f.remote.AddTask("@default", "r2", "Call mom")
	f.remote.AddTask("@default", "r3", "  ")
	f.remote.AddTask("@default", "r4", "Call mom")
	f.remote.AddCompletedTask("@default", "r5", "Pay rent")

	stdout, stderr, code := f.run(t, &commands.ImportCmd{})

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok: imported 1, skipped 4 from My Tasks (default list)\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	got := f.store.Snapshot()
	if len(got) != 2 || got[1].Text != "Call mom" || got[1].Recurring {
		t.Errorf("expected 'Call mom' appended as one-off, got %+v", got)
	}
}

func TestImportCommand_NamedList(t *testing.T) {
	f := newFixture()
	f.remote.AddList("work", "Work")
	f.remote.AddTask("work", "w1", "Send report")
	f.remote.AddTask("@default", "d1", "Buy milk")

	cmd := &commands.ImportCmd{}
	cmd.SetListName("work")
	stdout, _, code := f.run(t, cmd)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok: imported 1, skipped 0 from Work\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if got := f.store.Snapshot(); len(got) != 1 || got[0].Text != "Send report" {
		t.Errorf("expected only 'Send report', got %+v", got)
	}
}

func TestImportCommand_Errors(t *testing.T) {
	t.Run("list not found", func(t *testing.T) {
		f := newFixture()
		cmd := &commands.ImportCmd{}
		cmd.SetListName("Groceries")

		_, stderr, code := f.run(t, cmd)
		if code != exitcode.UserError {
			t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
		}
		if stderr != "error: list not found: Groceries\n" {
			t.Errorf("unexpected stderr %q", stderr)
		}
	})

	t.Run("ambiguous list", func(t *testing.T) {
		f := newFixture()
		f.remote.AddList("a", "Work")
		f.remote.AddList("b", "work")
		cmd := &commands.ImportCmd{}
		cmd.SetListName("WORK")

		_, stderr, code := f.run(t, cmd)
		if code != exitcode.UserError {
			t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
		}
		if stderr != "error: ambiguous list name: WORK\n" {
			t.Errorf("unexpected stderr %q", stderr)
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		f := newFixture()
		f.remote.ListErr = errors.New("request timed out")

		_, stderr, code := f.run(t, &commands.ImportCmd{})
		if code != exitcode.BackendError {
			t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
		}
		if stderr != "error: backend error: request timed out\n" {
			t.Errorf("unexpected stderr %q", stderr)
		}
	})

	t.Run("token revoked", func(t *testing.T) {
		f := newFixture()
		f.remote.ListErr = remote.ErrUnauthorized

		_, stderr, code := f.run(t, &commands.ImportCmd{})
		if code != exitcode.AuthError {
			t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
		}
		if !strings.Contains(stderr, "taskslip login") {
			t.Errorf("unexpected stderr %q", stderr)
		}
	})
}
