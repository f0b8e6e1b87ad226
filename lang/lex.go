package lang

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// rule pairs a token kind with the pattern recognizing it at the start of
// the remaining input.
type rule struct {
	kind    Kind
	pattern *regexp.Regexp
}

// rules is searched in order and the first match wins. Longer keywords must
// precede their prefixes (printwordcount before print), and every keyword
// must precede the identifier rule.
var rules = []rule{
	{KindAppend, regexp.MustCompile(`^append`)},
	{KindPrintWordCount, regexp.MustCompile(`^printwordcount`)},
	{KindPrintWords, regexp.MustCompile(`^printwords`)},
	{KindPrintLength, regexp.MustCompile(`^printlength`)},
	{KindList, regexp.MustCompile(`^list`)},
	{KindExit, regexp.MustCompile(`^exit`)},
	{KindPrint, regexp.MustCompile(`^print`)},
	{KindSet, regexp.MustCompile(`^set`)},
	{KindReverse, regexp.MustCompile(`^reverse`)},
	{KindConstant, regexp.MustCompile(`^(?:SPACE|TAB|NEWLINE)`)},
	{KindEnd, regexp.MustCompile(`^;`)},
	{KindPlus, regexp.MustCompile(`^\+`)},
	{KindString, regexp.MustCompile(`^"(?:\\.|[^"\\])*"`)},
	{KindIdentifier, regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*`)},
}

// Tokenize converts one line of source text into tokens.
//
// Characters that match no rule are dropped without error; the logger
// configured with [WithLogger] records each one at trace level.
func Tokenize(line string, opts ...Option) []Token {
	o := makeOptions(opts...)

	var tokens []Token

	rest := strings.TrimLeftFunc(line, unicode.IsSpace)

	for rest != "" {
		tok, n := match(rest)
		if n == 0 {
			r, size := utf8.DecodeRuneInString(rest)
			o.logger.Trace("tokenize skip",
				slog.String("char", string(r)),
				slog.Int("offset", len(line)-len(rest)),
			)

			rest = rest[size:]

			continue
		}

		tokens = append(tokens, tok)
		rest = strings.TrimLeftFunc(rest[n:], unicode.IsSpace)
	}

	o.logger.Trace("tokenize",
		slog.String("line", line),
		slog.Int("tokens", len(tokens)),
	)

	return tokens
}

// match returns the token recognized at the start of s and the number of
// bytes it consumed, or zero bytes if no rule matches.
func match(s string) (Token, int) {
	for _, r := range rules {
		loc := r.pattern.FindStringIndex(s)
		if loc == nil || loc[1] == 0 {
			continue
		}

		text := s[:loc[1]]
		if r.kind == KindString {
			text = unescape(text[1 : len(text)-1])
		}

		return Token{Kind: r.kind, Text: text}, loc[1]
	}

	return Token{}, 0
}

// unescape replaces every backslash escape \c with c.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}

// escape is the inverse of unescape for the characters that must be escaped
// inside a string literal.
func escape(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s) + 2)

	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			sb.WriteByte('\\')
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}
