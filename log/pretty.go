package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the pretty text handler.
var (
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	numberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	falseStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	messageStyle = lipgloss.NewStyle().Bold(true)

	levelStyle = map[slog.Level]lipgloss.Style{
		slog.Level(LevelTrace): lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		slog.LevelDebug:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		slog.LevelInfo:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		slog.LevelWarn:         lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		slog.LevelError:        lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// prettyTextHandler implements a colorized logfmt-like handler.
type prettyTextHandler struct {
	cfg    config
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyTextHandler(w io.Writer, cfg config) *prettyTextHandler {
	return &prettyTextHandler{
		cfg: cfg,
		mu:  &sync.Mutex{},
		w:   w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.Level(h.cfg.level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		if ts := h.cfg.formatTime(r.Time); ts != "" {
			buf.WriteString(timeStyle.Render(ts))
		}
	}

	h.writeLevel(buf, r.Level)

	if h.cfg.caller {
		if src := r.Source(); src != nil && src.File != "" {
			h.writeAttr(buf, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	h.space(buf)
	buf.WriteString(messageStyle.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	qualified := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(qualified, h.attrs)

	for _, a := range attrs {
		a.Key = h.qualify(a.Key)
		qualified = append(qualified, a)
	}

	return &prettyTextHandler{
		cfg:    h.cfg,
		mu:     h.mu,
		w:      h.w,
		attrs:  qualified,
		groups: h.groups,
	}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &prettyTextHandler{
		cfg:    h.cfg,
		mu:     h.mu,
		w:      h.w,
		attrs:  h.attrs,
		groups: append(h.groups[:len(h.groups):len(h.groups)], name),
	}
}

func (h *prettyTextHandler) qualify(key string) string {
	if len(h.groups) == 0 {
		return key
	}

	return strings.Join(h.groups, ".") + "." + key
}

func (h *prettyTextHandler) space(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

func (h *prettyTextHandler) writeLevel(buf *bytes.Buffer, level slog.Level) {
	h.space(buf)

	name := strings.ToUpper(Level(level).String())

	style, ok := levelStyle[level]
	if !ok {
		style = levelStyle[slog.LevelInfo]
	}

	buf.WriteString(style.Render(fmt.Sprintf("%-5s", name)))
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			if a.Key != "" {
				ga.Key = a.Key + "." + ga.Key
			}

			h.writeAttr(buf, ga)
		}

		return
	}

	h.space(buf)
	buf.WriteString(keyStyle.Render(a.Key + "="))
	h.writeValue(buf, a.Value)
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			s = strconv.Quote(s)
		}

		buf.WriteString(stringStyle.Render(s))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		buf.WriteString(numberStyle.Render(v.String()))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(trueStyle.Render("true"))
		} else {
			buf.WriteString(falseStyle.Render("false"))
		}

	case slog.KindTime:
		buf.WriteString(timeStyle.Render(h.cfg.formatTime(v.Time())))

	default:
		buf.WriteString(stringStyle.Render(strconv.Quote(v.String())))
	}
}
