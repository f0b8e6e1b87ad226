package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/strand/log"
	"github.com/ardnew/strand/pkg"
	"github.com/ardnew/strand/session"
)

// editDoneMsg is sent when the edited script parsed successfully.
type editDoneMsg struct{ script []byte }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-parse error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrefix = ":"
)

func helpMessage() string {
	return `
Commands:

  :help    Print this cruft
  :vars    List variables with a preview of their values
  :edit    Edit variables in external $EDITOR
  :clear   Clear screen
  :quit    Exit REPL

Usage:
  Type statements ending with a semicolon (;) to run them
  Type "set <file>.txt" to run a script, or "exit" to leave
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to abandon tab-cycling
  Use Up/Down arrows for history navigation
  Press Ctrl+E to edit variables in $EDITOR
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// ctrlCommands are the available colon commands.
var ctrlCommands = []string{"help", "vars", "edit", "clear", "quit"}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// formatOutput styles each line the interpreter emitted. Error lines are
// rendered with the error style, everything else as a result.
func formatOutput(output string) string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return ""
	}

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "Error: ") {
			lines[i] = errorStyle.Render(line)
		} else {
			lines[i] = resultStyle.Render(line)
		}
	}

	return strings.Join(lines, "\n")
}

// model is the Bubble Tea model for the REPL. Everything the session
// prints goes to out, which is flushed above the prompt after each input.
type model struct {
	ctxFunc  func() context.Context
	input    textinput.Model
	session  *session.Session
	out      *bytes.Buffer
	logger   log.Logger
	history  *History
	comp     completion
	width    int
	banner   bool
	quitting bool
}

// Run starts the REPL. Session options configure the output directory,
// script search path, and initial variables; the console is always the
// REPL itself.
func Run(
	ctx context.Context,
	cacheDir string,
	logger log.Logger,
	banner bool,
	opts ...session.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	out := new(bytes.Buffer)
	sess := session.New(append(opts, session.WithConsole(out))...)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "repl history unavailable",
			slog.String("path", filepath.Join(cacheDir, baseHistory)),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, sess, out, history, logger)
	m.banner = banner

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	sess *session.Session,
	out *bytes.Buffer,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.CharLimit = 1024
	ti.Width = defaultWidth
	ti.Focus()

	return model{
		ctxFunc: func() context.Context { return ctx },
		input:   ti,
		session: sess,
		out:     out,
		logger:  logger,
		history: history,
		comp:    completion{sel: -1},
		width:   defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	if !m.banner {
		return textinput.Blink
	}

	return tea.Batch(textinput.Blink, tea.Println(hintStyle.Render(
		pkg.Name+" "+pkg.Version()+" (type :help for help)",
	)))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		return m.applyEdit(msg.script)

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("🗴 edit cancelled"))

	case editDeclinedMsg:
		return m, tea.Println(hintStyle.Render("🗴 edit discarded"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("🗴 error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var hint string

	pos, browsing := m.history.Browsing()

	switch {
	case browsing:
		hint = hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos+1)),
			m.history.Len()))

	case strings.TrimSpace(m.input.Value()) == "":
		hint = hintStyle.Render("Type a statement ending with ; or :help for commands")

	default:
		hint = m.comp.bar(m.width)
	}

	return m.input.View() + "\n" + hint + "\n"
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			return m.quit()
		}

		m.input.SetValue("")
		m.history.Rewind()
		m.comp.reset()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			return m.quit()
		}

		return m, nil

	case tea.KeyCtrlE:
		return m.handleEdit()

	case tea.KeyEnter:
		if m.comp.cycling && len(m.comp.matches) > 0 {
			m.comp.cycling = false
			m.complete(true)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		if line, ok := m.history.Prev(); ok {
			m.show(line)
		}

		return m, nil

	case tea.KeyDown:
		line, _ := m.history.Next()
		m.show(line)

		return m, nil

	case tea.KeyEsc:
		if m.comp.cycling {
			m.comp.cycling = false
			m.input.SetValue(m.comp.origText)
			m.input.SetCursor(m.comp.origCursor)
			m.complete(false)
		}

		return m, nil
	}

	// Typing text may settle a completion; other edits (backspace, delete,
	// cursor movement) never do.
	typed := msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
	if !typed || msg.String() == " " {
		m.comp.cycling = false
	}

	var cmd tea.Cmd

	m.history.Rewind()
	m.input, cmd = m.input.Update(msg)
	m.complete(typed)

	return m, cmd
}

func (m model) quit() (model, tea.Cmd) {
	m.quitting = true

	return m, tea.Quit
}

// show replaces the input with a history line.
func (m *model) show(line string) {
	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.complete(false)
}

// complete refreshes the candidates for the word under the cursor. With
// settle set, a sole candidate that was typed in full is dismissed.
func (m *model) complete(settle bool) {
	input := m.input.Value()

	m.comp.find(m.session.Store(), input, m.input.Position())

	if settle && m.comp.settled(input) {
		m.comp.reset()
	}
}

// cycle moves the Tab selection by step, wrapping at either end. A sole
// candidate is inserted and dismissed at once.
func (m model) cycle(step int) (model, tea.Cmd) {
	n := len(m.comp.matches)

	switch {
	case n == 0:
		return m, nil

	case n == 1:
		m.insert(m.comp.matches[0].Str)
		m.comp.reset()

		return m, nil

	case m.comp.cycling:
		m.comp.sel = (m.comp.sel + step + n) % n

	default:
		m.comp.cycling = true
		m.comp.origText = m.input.Value()
		m.comp.origCursor = m.input.Position()

		m.comp.sel = 0
		if step < 0 {
			m.comp.sel = n - 1
		}
	}

	m.insert(m.comp.matches[m.comp.sel].Str)

	return m, nil
}

// insert replaces the word being completed with text.
func (m *model) insert(text string) {
	input, cursor := m.comp.splice(m.input.Value(), text)

	m.input.SetValue(input)
	m.input.SetCursor(cursor)
}

// flush returns commands printing everything the session wrote since the
// previous flush.
func (m model) flush() []tea.Cmd {
	output := formatOutput(m.out.String())
	m.out.Reset()

	if output == "" {
		return nil
	}

	return []tea.Cmd{tea.Println(output)}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.comp.reset()

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "repl history", slog.Any("error", err))
	}

	if name, ok := strings.CutPrefix(input, ctrlPrefix); ok {
		return m.executeCommand(input, strings.TrimSpace(name))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))

	res, err := m.session.Input(m.ctxFunc(), input)

	cmds := append([]tea.Cmd{tea.Println(formatCommand(input))}, m.flush()...)
	if err != nil {
		cmds = append(cmds, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	if res.Exited() {
		m.quitting = true
		cmds = append(cmds, tea.Quit)
	}

	return m, tea.Sequence(cmds...)
}

func (m model) executeCommand(input, name string) (model, tea.Cmd) {
	echo := tea.Println(formatCommand(input))

	m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("command", name))

	switch name {
	case "q", "quit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "v", "vars":
		return m, tea.Sequence(echo, tea.Println(m.listVariables()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		var cmd tea.Cmd

		m, cmd = m.handleEdit()

		return m, tea.Sequence(echo, cmd)
	}

	return m, tea.Sequence(echo, tea.Println(
		errorStyle.Render("Unknown command: "+name+" (try :help)"),
	))
}

func (m model) handleEdit() (model, tea.Cmd) {
	cmd := &editStoreCommand{
		session: m.session,
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	return m, tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.script == nil:
			return editCancelledMsg{}
		}

		return editDoneMsg{script: cmd.script}
	})
}

// applyEdit runs an edited script in the current store.
func (m model) applyEdit(script []byte) (model, tea.Cmd) {
	res, err := m.session.Script(m.ctxFunc(), bytes.NewReader(script))

	m.logger.TraceContext(m.ctxFunc(), "repl edit applied",
		slog.Int("variables", m.session.Store().Len()),
		slog.Int("failures", len(res.Failures)),
	)

	cmds := m.flush()
	if err != nil {
		cmds = append(cmds, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	cmds = append(cmds, tea.Println(resultStyle.Render(
		fmt.Sprintf("✔ %d variables", m.session.Store().Len()),
	)))

	if res.Exited() {
		m.quitting = true
		cmds = append(cmds, tea.Quit)
	}

	return m, tea.Sequence(cmds...)
}

// listVariables renders each variable with a preview of its value.
func (m model) listVariables() string {
	store := m.session.Store()
	if store.Len() == 0 {
		return hintStyle.Render("  (no variables)")
	}

	lines := make([]string, 0, store.Len())
	for name, value := range store.All() {
		lines = append(lines, "  "+name+" "+hintStyle.Render(formatPreview(value)))
	}

	return strings.Join(lines, "\n")
}
