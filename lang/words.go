package lang

import (
	"regexp"
	"slices"
	"strings"
)

// wordPattern matches an alphanumeric run optionally chained to further runs
// by single apostrophes or hyphens.
var wordPattern = regexp.MustCompile(`[a-zA-Z0-9]+(?:[-'][a-zA-Z0-9]+)*`)

// Words returns the words of s in order. Characters outside any word are
// separators and are discarded.
func Words(s string) []string {
	return wordPattern.FindAllString(s, -1)
}

// ReverseWords returns the words of s in reverse order joined by single
// spaces.
func ReverseWords(s string) string {
	w := Words(s)
	slices.Reverse(w)

	return strings.Join(w, " ")
}
