package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ardnew/strand/lang"
	"github.com/ardnew/strand/log"
)

// Fmt parses scripts and prints them in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical strand source (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Tokens Tokens `cmd:""                    help:"Print the token stream of each line as a table."`
}

// Native formats scripts as canonical strand source.
type Native struct {
	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`

	out io.Writer
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := readDocument(ctx, f.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "native"))
	}

	return doc.Format(ctx, writer(f.out))
}

// JSON formats scripts as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`

	out io.Writer
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := readDocument(ctx, j.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "json"))
	}

	if err := doc.FormatJSON(ctx, writer(j.out), j.Indent); err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	return nil
}

// YAML formats scripts as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`

	out io.Writer
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := readDocument(ctx, y.Source)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "yaml"))
	}

	if err := doc.FormatYAML(ctx, writer(y.out), y.Indent); err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	return nil
}

// Tokens prints the tokens of every line. Lines are tokenized but not
// parsed, so malformed lines are shown as well.
type Tokens struct {
	Style string `default:"light" enum:"default,light,rounded,double" help:"Table border style."`

	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source"`

	out io.Writer
}

var tableStyle = map[string]table.Style{
	"default": table.StyleDefault,
	"light":   table.StyleLight,
	"rounded": table.StyleRounded,
	"double":  table.StyleDouble,
}

// Run executes the tokens command.
func (k *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src, err := openSources(k.Source)
	if err != nil {
		return err
	}
	defer src.Close()

	tw := table.NewWriter()
	tw.SetOutputMirror(writer(k.out))
	tw.SetStyle(tableStyle[k.Style])
	tw.AppendHeader(table.Row{"File", "Line", "#", "Kind", "Text"})

	n := 0

	for name, r := range src.Each() {
		err = eachLine(r, func(number int, line string) {
			for i, tok := range lang.Tokenize(line, lang.WithLogger(log.Default())) {
				tw.AppendRow(table.Row{name, number, i + 1, tok.Kind.String(), strconv.Quote(tok.Text)})
				n++
			}
		})
		if err != nil {
			return ErrReadSource.Wrap(err).With(slog.String("file", name))
		}
	}

	tw.AppendFooter(table.Row{"", "", "", "tokens", n})
	tw.Render()

	return nil
}

// readDocument parses every line of the given sources into one document.
// Line numbers restart at 1 in each source, and each line records the
// source it came from.
func readDocument(ctx context.Context, sources []string) (*lang.Document, error) {
	src, err := openSources(sources)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var doc lang.Document

	for name, r := range src.Each() {
		part, err := lang.ParseDocument(r, lang.WithLogger(log.Default()))
		if err != nil {
			return nil, lang.NewError(name).Wrap(err)
		}

		for _, line := range part.Lines {
			line.File = name
			doc.Lines = append(doc.Lines, line)
		}
	}

	log.DebugContext(ctx, "parsed document",
		slog.Int("lines", len(doc.Lines)),
		slog.Bool("stdin", src.HasStdin()),
	)

	return &doc, nil
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}
