package lang

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Line is one parsed, non-blank line of a script. Number counts from 1 at
// the start of the reader given to [ParseDocument]; File is set by callers
// that combine several sources.
type Line struct {
	File    string   `json:"file,omitempty" yaml:"file,omitempty"`
	Number  int      `json:"line"           yaml:"line"`
	Source  string   `json:"source"         yaml:"source"`
	Program *Program `json:"program"        yaml:"program"`
}

// Document is the parsed form of a whole script, one [Line] per non-blank
// source line.
type Document struct {
	Lines []Line `json:"lines" yaml:"lines"`
}

// ParseDocument reads a script from r and parses every non-blank line.
// The first malformed line stops parsing; its error wraps the
// *ParseError and names the line number.
func ParseDocument(r io.Reader, opts ...Option) (*Document, error) {
	var doc Document

	scan := bufio.NewScanner(r)

	for n := 1; scan.Scan(); n++ {
		src := strings.TrimSpace(scan.Text())
		if src == "" {
			continue
		}

		prog, err := Parse(Tokenize(src, opts...), opts...)
		if err != nil {
			return nil, NewError("line " + strconv.Itoa(n)).Wrap(err).
				With(slog.String("source", src))
		}

		doc.Lines = append(doc.Lines, Line{Number: n, Source: src, Program: prog})
	}

	if err := scan.Err(); err != nil {
		return nil, WrapError(err)
	}

	return &doc, nil
}

// Format writes the canonical source form of every line, one per line.
func (d *Document) Format(_ context.Context, w io.Writer) error {
	for _, line := range d.Lines {
		if _, err := fmt.Fprintln(w, line.Program.String()); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the document as JSON. An indent of zero writes compact
// JSON.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(d)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the document as YAML. An indent of zero writes flow
// style.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, d, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
