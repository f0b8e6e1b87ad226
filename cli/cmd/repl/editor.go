package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/strand/lang"
	"github.com/ardnew/strand/log"
	"github.com/ardnew/strand/session"
)

const defaultEditor = "vi"

// editStoreCommand implements [tea.ExecCommand] for the edit-parse-retry
// loop. It writes the session's variables as set statements to a temp file,
// opens the user's editor, and validates the result. On a parse error the
// user is prompted to re-edit; declining cancels the edit.
//
// A validated script is interpreted in the session's store. Variables are
// never removed, so deleting a line leaves its variable unchanged.
type editStoreCommand struct {
	session *session.Session
	ctxFunc func() context.Context
	logger  log.Logger
	script  []byte
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editStoreCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editStoreCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editStoreCommand) SetStderr(w io.Writer) { c.stderr = w }

// storeScript renders every stored variable as one set statement per line.
func storeScript(store *lang.Store) string {
	var b strings.Builder

	for name, value := range store.All() {
		b.WriteString(lang.Assignment(name, value).String())
		b.WriteByte('\n')
	}

	return b.String()
}

// Run executes the edit-parse-retry loop. A validated script is kept in
// c.script; an emptied file leaves it nil.
func (c *editStoreCommand) Run() error {
	ctx := c.ctxFunc()
	content := storeScript(c.session.Store())

	f, err := os.CreateTemp(os.TempDir(), "strand-repl-*.txt")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		_, parseErr := lang.ParseDocument(
			bytes.NewReader(data),
			lang.WithLogger(c.logger),
		)
		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.script = data

			return nil
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		content = string(data)
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
