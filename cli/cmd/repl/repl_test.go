package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/strand/log"
	"github.com/ardnew/strand/session"
)

func newTestModel(t *testing.T) (model, string) {
	t.Helper()

	dir := t.TempDir()
	out := new(bytes.Buffer)
	sess := session.New(session.WithConsole(out), session.WithOutputDir(dir))
	history := NewHistory(filepath.Join(dir, baseHistory))

	return newModel(context.Background(), sess, out, history, log.Make(new(bytes.Buffer))), dir
}

func submit(t *testing.T, m model, line string) model {
	t.Helper()

	m.input.SetValue(line)

	m, _ = m.executeInput()

	return m
}

func TestModel_ExecuteInput(t *testing.T) {
	m, dir := newTestModel(t)

	m = submit(t, m, `set a "hello" + SPACE; append a "world";`)
	m = submit(t, m, "print a;")

	if got := m.session.Store().Get("a"); got != "hello world" {
		t.Errorf("a = %q, want %q", got, "hello world")
	}

	if m.out.Len() != 0 {
		t.Errorf("console not drained: %q", m.out.String())
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if m.quitting {
		t.Error("quitting after ordinary input")
	}

	data, err := os.ReadFile(filepath.Join(dir, session.DefaultOutput))
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "hello world\n" {
		t.Errorf("transcript = %q", got)
	}

	if got := m.history.Entries(); len(got) != 2 {
		t.Errorf("history = %q, want 2 entries", got)
	}
}

func TestModel_Exit(t *testing.T) {
	for _, line := range []string{"exit", "EXIT", "exit;"} {
		t.Run(line, func(t *testing.T) {
			m, _ := newTestModel(t)

			m = submit(t, m, line)
			if !m.quitting {
				t.Errorf("%q did not quit", line)
			}

			if m.View() != "" {
				t.Errorf("View() after quit = %q", m.View())
			}
		})
	}
}

func TestModel_Commands(t *testing.T) {
	m, _ := newTestModel(t)

	m = submit(t, m, `set greeting "hi";`)

	if got := m.listVariables(); !strings.Contains(got, "greeting") {
		t.Errorf("listVariables() = %q", got)
	}

	m = submit(t, m, ":quit")
	if !m.quitting {
		t.Error(":quit did not quit")
	}
}

func TestModel_Completion(t *testing.T) {
	m, _ := newTestModel(t)

	m = submit(t, m, `set greeting "hi";`)

	m.input.SetValue("print gre")
	m.input.SetCursor(len("print gre"))
	m.complete(false)

	if len(m.comp.matches) == 0 || m.comp.matches[0].Str != "greeting" {
		t.Fatalf("matches = %v, want greeting first", m.comp.matches)
	}

	m, _ = m.cycle(1)

	if got := m.input.Value(); got != "print greeting" {
		t.Errorf("after Tab input = %q", got)
	}

	// No completion inside a string literal.
	m.input.SetValue(`set a "gre`)
	m.input.SetCursor(len(`set a "gre`))
	m.complete(false)

	if len(m.comp.matches) != 0 {
		t.Errorf("matches inside string = %v", m.comp.matches)
	}
}

func TestModel_CycleAndRevert(t *testing.T) {
	m, _ := newTestModel(t)

	m = submit(t, m, `set alpha "1"; set alps "2";`)

	m.input.SetValue("print al")
	m.input.SetCursor(len("print al"))
	m.complete(false)

	if len(m.comp.matches) != 2 {
		t.Fatalf("matches = %v, want 2", m.comp.matches)
	}

	m, _ = m.cycle(1)
	first := m.input.Value()

	m, _ = m.cycle(1)
	if second := m.input.Value(); second == first {
		t.Errorf("second Tab left input at %q", second)
	}

	m, _ = m.cycle(1)
	if got := m.input.Value(); got != first {
		t.Errorf("Tab did not wrap: %q, want %q", got, first)
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.input.Value(); got != "print al" {
		t.Errorf("Esc restored %q, want %q", got, "print al")
	}

	if m.comp.cycling {
		t.Error("still cycling after Esc")
	}
}

func TestModel_CtrlC(t *testing.T) {
	m, _ := newTestModel(t)

	m.input.SetValue("print")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.quitting || m.input.Value() != "" {
		t.Fatalf("Ctrl+C on text: quitting=%v input=%q", m.quitting, m.input.Value())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting {
		t.Error("Ctrl+C on empty line did not quit")
	}
}

func TestModel_History(t *testing.T) {
	m, _ := newTestModel(t)

	m = submit(t, m, "list;")
	m = submit(t, m, `set a "x";`)

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m, _ = m.handleKey(up)
	if got := m.input.Value(); got != `set a "x";` {
		t.Errorf("first Up = %q", got)
	}

	m, _ = m.handleKey(up)
	if got := m.input.Value(); got != "list;" {
		t.Errorf("second Up = %q", got)
	}

	if !strings.Contains(m.View(), "/2") {
		t.Errorf("View() while browsing lacks position: %q", m.View())
	}

	m, _ = m.handleKey(up)
	if got := m.input.Value(); got != "list;" {
		t.Errorf("Up at oldest = %q", got)
	}

	m, _ = m.handleKey(down)
	m, _ = m.handleKey(down)

	if got := m.input.Value(); got != "" {
		t.Errorf("Down past end = %q", got)
	}

	if _, browsing := m.history.Browsing(); browsing {
		t.Error("still browsing after Down past end")
	}
}

func TestFormatOutput(t *testing.T) {
	if got := formatOutput("\n"); got != "" {
		t.Errorf("formatOutput(newline) = %q", got)
	}

	got := formatOutput("hello\nError: Undefined variable\n")
	if n := strings.Count(got, "\n"); n != 1 {
		t.Errorf("formatOutput produced %d line breaks, want 1", n)
	}

	if !strings.Contains(got, "Undefined variable") {
		t.Errorf("formatOutput dropped text: %q", got)
	}
}
