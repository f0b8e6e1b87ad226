package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/strand/lang"
)

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, the concatenation operator, the statement
// terminator, the string quote, and the command prefix.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '+', ';', '"', ':':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inString reports whether byte offset pos of input lies inside a string
// literal, honoring backslash escapes.
func inString(input string, pos int) bool {
	quoted := false

	for i := 0; i < pos && i < len(input); i++ {
		switch input[i] {
		case '\\':
			if quoted {
				i++
			}
		case '"':
			quoted = !quoted
		}
	}

	return quoted
}

// keywords lists every statement keyword in source spelling.
func keywords() []string {
	var kw []string

	for k := lang.KindSet; k.IsKeyword(); k++ {
		kw = append(kw, k.Keyword())
	}

	return kw
}

// candidates returns the names that may complete the word starting at
// wordStart. A word directly after the command prefix completes to a
// command, the first word of a statement to a keyword, and later words to
// constants and variable names.
func candidates(store *lang.Store, input string, wordStart int) []string {
	prefix := input[:wordStart]
	if strings.TrimSpace(prefix) == ctrlPrefix {
		return ctrlCommands
	}

	if i := strings.LastIndexByte(prefix, ';'); i >= 0 {
		prefix = prefix[i+1:]
	}

	if strings.TrimSpace(prefix) == "" {
		return keywords()
	}

	return slices.Concat(lang.Constants(), store.Names())
}

// completion is the candidate list for the word under the cursor together
// with the state of Tab cycling through it.
type completion struct {
	matches fuzzy.Matches
	start   int // byte offsets of the word being completed
	end     int
	sel     int // index into matches, or -1

	cycling    bool
	origText   string // input and cursor from before cycling began
	origCursor int
}

// find recomputes the matches for the word at cursor, ranked best-first.
// An empty word or a cursor inside a string literal has no matches.
func (c *completion) find(store *lang.Store, input string, cursor int) {
	var word string

	word, c.start, c.end = wordBounds(input, cursor)
	c.matches = nil

	if !c.cycling {
		c.sel = -1
	}

	if word == "" || inString(input, c.start) {
		return
	}

	if names := candidates(store, input, c.start); len(names) > 0 {
		c.matches = fuzzy.Find(word, names)
	}
}

// settled reports whether the only match is exactly the word typed, in
// which case there is nothing left to offer.
func (c *completion) settled(input string) bool {
	return len(c.matches) == 1 && input[c.start:c.end] == c.matches[0].Str
}

// reset drops the matches and any selection.
func (c *completion) reset() {
	c.matches = nil
	c.sel = -1
	c.cycling = false
}

// splice returns input with the completed word replaced by text, and the
// cursor offset just past it. The word's end moves to that offset.
func (c *completion) splice(input, text string) (string, int) {
	out := input[:c.start] + text + input[c.end:]
	c.end = c.start + len(text)

	return out, c.end
}

// bar renders the completion bar within width cells. Candidates that do
// not fit are replaced by an ellipsis.
func (c completion) bar(width int) string {
	if len(c.matches) == 0 || width <= 0 {
		return ""
	}

	const gap = "  "

	more := hintStyle.Render("...")
	room := width - lipgloss.Width(more)

	parts := make([]string, 0, len(c.matches))
	used := 0

	for i, match := range c.matches {
		item := renderCandidate(match, c.cycling && i == c.sel)

		w := lipgloss.Width(item)
		if i > 0 {
			w += len(gap)
		}

		if i > 0 && used+w > room {
			parts = append(parts, more)

			break
		}

		parts = append(parts, item)
		used += w
	}

	return strings.Join(parts, gap)
}

// renderCandidate renders one candidate with its matched runes in bold.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base := suggestionStyle
	if selected {
		base = selectedStyle
	}

	bold := base.Bold(true)

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(bold.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// formatPreview returns a short preview of a stored value.
func formatPreview(value string) string {
	const limit = 40

	s := lang.Value{Kind: lang.ValueString, Text: value}.String()
	if utf8.RuneCountInString(s) > limit {
		return string([]rune(s)[:limit-3]) + "..."
	}

	return s
}
