package lang

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

// recorder is a Sink collecting every emitted line.
type recorder struct{ lines []string }

func (r *recorder) Emit(line string) error {
	r.lines = append(r.lines, line)

	return nil
}

func run(t *testing.T, store *Store, input string) (Result, []string) {
	t.Helper()

	var rec recorder

	res := Interpret(context.Background(), input, store, &rec)

	return res, rec.lines
}

func TestEvaluate_Output(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "print concatenation",
			input: `set a "foo" + SPACE + "bar"; print a;`,
			want:  []string{"foo bar"},
		},
		{
			name:  "undefined identifier reads empty",
			input: `print "[" + nope + "]";`,
			want:  []string{"[]"},
		},
		{
			name:  "constants",
			input: `print "a" + TAB + "b" + NEWLINE + "c";`,
			want:  []string{"a\tb\nc"},
		},
		{
			name:  "length counts characters",
			input: `printlength "héllo";`,
			want:  []string{"Length is: 5"},
		},
		{
			name:  "length of empty expression",
			input: `printlength;`,
			want:  []string{"Length is: 0"},
		},
		{
			name:  "words",
			input: `printwords "well-known don't stop";`,
			want:  []string{"Words are:", "well-known", "don't", "stop"},
		},
		{
			name:  "words without any",
			input: `printwords "...";`,
			want:  []string{"Words are:"},
		},
		{
			name:  "word count",
			input: `printwordcount "one, two; three!";`,
			want:  []string{"Wordcount is: 3"},
		},
		{
			name:  "list in insertion order",
			input: `set b "1"; set a "2"; set b "3"; list;`,
			want:  []string{"Identifier list (2):", "b: 3", "a: 2"},
		},
		{
			name:  "list of empty store",
			input: `list;`,
			want:  []string{"Identifier list (0):"},
		},
		{
			name:  "failure is isolated",
			input: `print "one"; reverse c; print "three";`,
			want:  []string{"one", "Error: Undefined variable: c", "three"},
		},
		{
			name:  "exit stops the line",
			input: `print "a"; exit; print "b";`,
			want:  []string{"a", "Exiting the interpreter."},
		},
		{
			name:  "parse error runs nothing",
			input: `print "a"; set;`,
			want:  []string{`Error: in line 'print "a"; set;': Expected identifier after 'set'`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := run(t, NewStore(), tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluate_Concatenation(t *testing.T) {
	store := NewStore()

	res, _ := run(t, store, `set a "foo" + SPACE + "bar";`)
	if !res.OK() {
		t.Fatalf("result not OK: %v", res.Err())
	}

	if got := store.Get("a"); got != "foo bar" {
		t.Errorf("a = %q, want %q", got, "foo bar")
	}
}

func TestEvaluate_AppendCreates(t *testing.T) {
	set, appended := NewStore(), NewStore()

	run(t, set, `set b "x";`)
	run(t, appended, `append b "x";`)

	if !slices.Equal(set.Names(), appended.Names()) ||
		set.Get("b") != appended.Get("b") {
		t.Errorf("append on absent = %v, set = %v",
			appended.Snapshot(), set.Snapshot())
	}

	run(t, appended, `append b "y" + b;`)

	if got := appended.Get("b"); got != "xyx" {
		t.Errorf("b = %q, want %q", got, "xyx")
	}
}

func TestEvaluate_Reverse(t *testing.T) {
	t.Run("undefined", func(t *testing.T) {
		store := NewStore()

		res, out := run(t, store, "reverse c;")

		if store.Len() != 0 {
			t.Errorf("store changed: %v", store.Snapshot())
		}

		if len(res.Failures) != 1 || !errors.Is(res.Failures[0], ErrUndefined) {
			t.Fatalf("failures = %v, want one ErrUndefined", res.Failures)
		}

		if res.Failures[0].Statement.Kind != StatementReverse {
			t.Errorf("failed statement = %v", res.Failures[0].Statement)
		}

		if !slices.Equal(out, []string{"Error: Undefined variable: c"}) {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("defined", func(t *testing.T) {
		store := NewStore()
		store.Set("c", "one two three")

		res, _ := run(t, store, "reverse c;")
		if !res.OK() {
			t.Fatalf("result not OK: %v", res.Err())
		}

		if got := store.Get("c"); got != "three two one" {
			t.Errorf("c = %q, want %q", got, "three two one")
		}
	})

	t.Run("punctuation dropped", func(t *testing.T) {
		store := NewStore()
		store.Set("c", "  hello,   big-world! ")

		run(t, store, "reverse c;")

		if got := store.Get("c"); got != "big-world hello" {
			t.Errorf("c = %q, want %q", got, "big-world hello")
		}
	})
}

func TestEvaluate_Isolation(t *testing.T) {
	store := NewStore()

	res, out := run(t, store, `set a "1"; reverse missing; set b "3";`)

	if got := store.Snapshot(); got["a"] != "1" || got["b"] != "3" {
		t.Errorf("store = %v, want a and b set", got)
	}

	var errorLines int

	for _, line := range out {
		if strings.HasPrefix(line, "Error: ") {
			errorLines++
		}
	}

	if errorLines != 1 {
		t.Errorf("got %d error lines, want 1: %q", errorLines, out)
	}

	if len(res.Failures) != 1 || res.Failures[0].Index != 1 {
		t.Errorf("failures = %v, want one at index 1", res.Failures)
	}

	if res.Exited() {
		t.Error("failure reported as exit")
	}
}

func TestEvaluate_Exit(t *testing.T) {
	store := NewStore()

	res, _ := run(t, store, `set a "x"; exit; set b "y";`)

	if !res.Exited() {
		t.Error("Exited() = false")
	}

	if _, ok := store.Lookup("b"); ok {
		t.Error("statement after exit ran")
	}
}

func TestEvaluate_OutputFailure(t *testing.T) {
	sink := SinkFunc(func(string) error { return errors.New("closed") })

	prog, err := Parse(Tokenize(`print "a"; set a "b";`))
	if err != nil {
		t.Fatal(err)
	}

	store := NewStore()
	res := Evaluate(context.Background(), prog, store, sink)

	if len(res.Failures) != 1 || !errors.Is(res.Failures[0], ErrOutput) {
		t.Fatalf("failures = %v, want one ErrOutput", res.Failures)
	}

	if store.Get("a") != "b" {
		t.Error("statement after output failure did not run")
	}

	// Exit still ends evaluation when its own line cannot be written.
	prog, err = Parse(Tokenize(`exit; set a "after";`))
	if err != nil {
		t.Fatal(err)
	}

	res = Evaluate(context.Background(), prog, store, sink)

	if !res.Exited() {
		t.Error("exit with a failing sink did not set Exit")
	}

	if len(res.Failures) != 1 || !errors.Is(res.Failures[0], ErrOutput) {
		t.Errorf("failures = %v, want one ErrOutput", res.Failures)
	}

	if got := store.Get("a"); got != "b" {
		t.Errorf("a = %q after exit, want %q", got, "b")
	}
}

func TestEvaluate_PanicRecovered(t *testing.T) {
	prog, err := Parse(Tokenize(`set a "x"; print "after";`))
	if err != nil {
		t.Fatal(err)
	}

	var rec recorder

	res := Evaluate(context.Background(), prog, nil, &rec)

	if len(res.Failures) != 1 || !errors.Is(res.Failures[0], ErrPanic) {
		t.Fatalf("failures = %v, want one ErrPanic", res.Failures)
	}

	if len(rec.lines) != 2 || rec.lines[1] != "after" ||
		!strings.HasPrefix(rec.lines[0], "Error: statement panicked") {
		t.Errorf("output = %q", rec.lines)
	}
}

func TestResult(t *testing.T) {
	var ok Result
	if !ok.OK() || ok.Err() != nil {
		t.Errorf("zero Result: OK=%v Err=%v", ok.OK(), ok.Err())
	}

	perr := newParseError(KindEnd, "bad")
	fail := &EvalError{Err: ErrUndefined.Wrap(errors.New("x"))}

	merged := ok.Merge(Result{Parse: perr}).Merge(Result{Failures: []*EvalError{fail}, Exit: true})

	if merged.OK() || !merged.Exited() {
		t.Errorf("merged: OK=%v Exited=%v", merged.OK(), merged.Exited())
	}

	if !errors.Is(merged.Err(), ErrSyntax) {
		t.Errorf("Err() = %v, want ErrSyntax", merged.Err())
	}

	if err := (Result{Failures: []*EvalError{fail}}).Err(); !errors.Is(err, ErrUndefined) {
		t.Errorf("Err() = %v, want ErrUndefined", err)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"well-known don't stop", []string{"well-known", "don't", "stop"}},
		{"hi!", []string{"hi"}},
		{"", nil},
		{"--a--", []string{"a"}},
		{"a-b- c''d", []string{"a-b", "c", "d"}},
		{"R2D2 and C-3PO", []string{"R2D2", "and", "C-3PO"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Words(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("Words(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTee(t *testing.T) {
	var console, file bytes.Buffer

	transcript := bufio.NewWriter(&file)
	sink := NewTee(&console, transcript)

	for _, line := range []string{"one", "two"} {
		if err := sink.Emit(line); err != nil {
			t.Fatal(err)
		}

		if console.String() != file.String() {
			t.Fatalf("console %q and transcript %q diverged", console.String(), file.String())
		}
	}

	if got := file.String(); got != "one\ntwo\n" {
		t.Errorf("transcript = %q", got)
	}

	if err := NewTee(nil, nil).Emit("x"); err != nil {
		t.Errorf("nil writers: %v", err)
	}
}
