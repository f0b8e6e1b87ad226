package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSession(t *testing.T, opts ...Option) (*Session, *bytes.Buffer, string) {
	t.Helper()

	var console bytes.Buffer

	dir := t.TempDir()
	s := New(append([]Option{WithConsole(&console), WithOutputDir(dir)}, opts...)...)

	return s, &console, dir
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return string(b)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"input1.txt", "output1.txt"},
		{"input12.txt", "output12.txt"},
		{"test.txt", "output.txt"},
		{"dir3/case42.txt", "output42.txt"},
		{"a1b2.txt", "output2.txt"},
		{"script", "output.txt"},
		{"x7.txt.bak", "output7.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := OutputName(tt.input); got != tt.want {
				t.Errorf("OutputName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLine(t *testing.T) {
	var transcript bytes.Buffer

	s, console, _ := newTestSession(t, WithTranscript(&transcript))
	ctx := context.Background()

	if res := s.Line(ctx, "   "); !res.OK() {
		t.Errorf("blank line: %v", res.Err())
	}

	res := s.Line(ctx, `set a "x"`)
	if res.Parse == nil {
		t.Error("missing semicolon accepted")
	}

	res = s.Line(ctx, `  set a "x" + SPACE + "y"; print a;  `)
	if !res.OK() {
		t.Errorf("valid line: %v", res.Err())
	}

	want := "Error: Every input must end with a semicolon (;). Please fix the line: set a \"x\"\n" +
		"x y\n"

	if console.String() != want {
		t.Errorf("console = %q, want %q", console.String(), want)
	}

	if transcript.String() != want {
		t.Errorf("transcript = %q, want %q", transcript.String(), want)
	}
}

func TestScript(t *testing.T) {
	s, console, _ := newTestSession(t)

	script := strings.Join([]string{
		`set a "one two three";`,
		``,
		`reverse a; print a;`,
		`reverse nope;`,
		`exit;`,
		`print "unreachable";`,
	}, "\n")

	res, err := s.Script(context.Background(), strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}

	if !res.Exited() {
		t.Error("exit not reported")
	}

	if len(res.Failures) != 1 {
		t.Errorf("failures = %v, want 1", res.Failures)
	}

	want := "three two one\nError: Undefined variable: nope\nExiting the interpreter.\n"
	if console.String() != want {
		t.Errorf("console = %q, want %q", console.String(), want)
	}
}

func TestFile(t *testing.T) {
	s, console, dir := newTestSession(t)
	ctx := context.Background()

	first := writeScript(t, dir, "input1.txt", "set a \"hello\";\nprint a;\n")
	second := writeScript(t, dir, "input2.txt", "append a SPACE + \"world\";\nlist;\n")

	if _, err := s.File(ctx, first); err != nil {
		t.Fatal(err)
	}

	if _, err := s.File(ctx, second); err != nil {
		t.Fatal(err)
	}

	if got, want := readFile(t, filepath.Join(dir, "output1.txt")),
		"Reading commands from "+first+"...\nhello\n"; got != want {
		t.Errorf("output1.txt = %q, want %q", got, want)
	}

	want2 := "Reading commands from " + second + "...\n" +
		"Identifier list (1):\na: hello world\n"
	if got := readFile(t, filepath.Join(dir, "output2.txt")); got != want2 {
		t.Errorf("output2.txt = %q, want %q", got, want2)
	}

	if !strings.HasSuffix(console.String(), want2) {
		t.Errorf("console = %q", console.String())
	}

	// A second run replaces the transcript.
	if _, err := s.File(ctx, first); err != nil {
		t.Fatal(err)
	}

	if got := readFile(t, filepath.Join(dir, "output1.txt")); strings.Count(got, "Reading") != 1 {
		t.Errorf("output1.txt not truncated: %q", got)
	}
}

func TestFile_SearchPath(t *testing.T) {
	scripts := t.TempDir()
	writeScript(t, scripts, "found3.txt", "print \"ok\";\n")

	s, console, dir := newTestSession(t, WithSearchPath(SearchPath(scripts)...))

	if _, err := s.File(context.Background(), "found3.txt"); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(console.String(), "ok\n") {
		t.Errorf("console = %q", console.String())
	}

	if _, err := os.Stat(filepath.Join(dir, "output3.txt")); err != nil {
		t.Error(err)
	}

	_, err := s.File(context.Background(), "missing9.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing script: err = %v, want ErrNotFound", err)
	}
}

func TestSearchPath(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()

	t.Setenv(PathVar(), b)

	got := SearchPath(a, filepath.Join(a, "absent"))

	if len(got) == 0 || got[0] != a {
		t.Fatalf("SearchPath = %v, want %q first", got, a)
	}

	for _, d := range got {
		if !isDir(d) {
			t.Errorf("SearchPath kept %q", d)
		}
	}
}

func TestInput(t *testing.T) {
	s, console, dir := newTestSession(t)
	ctx := context.Background()

	steps := []struct {
		line string
		exit bool
	}{
		{`set a "x";`, false},
		{`print a`, false},
		{`print a;`, false},
		{`set absent5.txt`, false},
		{`EXIT`, true},
	}

	for _, step := range steps {
		res, err := s.Input(ctx, step.line)
		if err != nil {
			t.Fatalf("Input(%q): %v", step.line, err)
		}

		if res.Exited() != step.exit {
			t.Errorf("Input(%q) exit = %v, want %v", step.line, res.Exited(), step.exit)
		}
	}

	want := "Error: Every input must end with a semicolon (;). Please try again.\n" +
		"x\n" +
		"Error: File 'absent5.txt' not found. Please try again.\n" +
		"Exiting the interpreter.\n"
	if console.String() != want {
		t.Errorf("console = %q, want %q", console.String(), want)
	}

	if got := readFile(t, filepath.Join(dir, DefaultOutput)); got != "x\n" {
		t.Errorf("%s = %q, want %q", DefaultOutput, got, "x\n")
	}

	if _, err := s.Input(ctx, `print a;`); err != nil {
		t.Fatal(err)
	}

	if got := readFile(t, filepath.Join(dir, DefaultOutput)); got != "x\nx\n" {
		t.Errorf("%s not appended: %q", DefaultOutput, got)
	}
}

func TestInput_RunsScript(t *testing.T) {
	s, _, dir := newTestSession(t)
	path := writeScript(t, dir, "input7.txt", "set b \"from file\";\n")

	if _, err := s.Input(context.Background(), "set "+path); err != nil {
		t.Fatal(err)
	}

	if got := s.Store().Get("b"); got != "from file" {
		t.Errorf("b = %q", got)
	}
}

func TestAssert(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.Line(context.Background(), `set a "one two"; set b a + " three";`)

	tests := []struct {
		expr string
		want bool
		err  bool
	}{
		{`a == "one two"`, true, false},
		{`b startsWith "one"`, true, false},
		{`len(words(b)) == 3`, true, false},
		{`reverseWords(b) == "three two one"`, true, false},
		{`undefined == nil`, true, false},
		{`a == "nope"`, false, false},
		{`a +`, false, true},
		{`len(a)`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := s.Assert(tt.expr)
			if (err != nil) != tt.err {
				t.Fatalf("Assert(%q) error = %v, want error %v", tt.expr, err, tt.err)
			}

			if err != nil && !errors.Is(err, ErrAssert) {
				t.Errorf("error %v is not ErrAssert", err)
			}

			if got != tt.want {
				t.Errorf("Assert(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.txt")

	for range 2 {
		tr, err := Append(path)
		if err != nil {
			t.Fatal(err)
		}

		if _, err := tr.WriteString("line\n"); err != nil {
			t.Fatal(err)
		}

		if tr.Name() != path {
			t.Errorf("Name() = %q", tr.Name())
		}

		if err := tr.Close(); err != nil {
			t.Fatal(err)
		}
	}

	if got := readFile(t, path); got != "line\nline\n" {
		t.Errorf("appended = %q", got)
	}

	tr, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	if got := readFile(t, path); got != "" {
		t.Errorf("created = %q", got)
	}

	if _, err := Create(filepath.Join(path, "not-a-dir")); !errors.Is(err, ErrTranscript) {
		t.Errorf("err = %v, want ErrTranscript", err)
	}
}
