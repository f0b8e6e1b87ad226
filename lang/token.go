package lang

import (
	"strconv"
	"strings"
)

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	KindInvalid Kind = iota
	KindSet
	KindAppend
	KindReverse
	KindList
	KindExit
	KindPrint
	KindPrintLength
	KindPrintWords
	KindPrintWordCount
	KindConstant
	KindEnd
	KindPlus
	KindIdentifier
	KindString
)

var kindName = [...]string{
	KindInvalid:        "INVALID",
	KindSet:            "SET",
	KindAppend:         "APPEND",
	KindReverse:        "REVERSE",
	KindList:           "LIST",
	KindExit:           "EXIT",
	KindPrint:          "PRINT",
	KindPrintLength:    "PRINTLENGTH",
	KindPrintWords:     "PRINTWORDS",
	KindPrintWordCount: "PRINTWORDCOUNT",
	KindConstant:       "CONSTANT",
	KindEnd:            "END",
	KindPlus:           "PLUS",
	KindIdentifier:     "IDENTIFIER",
	KindString:         "STRING_LITERAL",
}

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindName) {
		return kindName[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsKeyword reports whether the kind introduces a statement.
func (k Kind) IsKeyword() bool {
	return k >= KindSet && k <= KindPrintWordCount
}

// Keyword returns the source spelling of a statement keyword, or the empty
// string if k is not a keyword.
func (k Kind) Keyword() string {
	if !k.IsKeyword() {
		return ""
	}

	return strings.ToLower(k.String())
}

// Token is one lexical unit: its kind and the text it carries.
// Keywords carry their spelling, constants their name, identifiers their
// name, and string literals their unquoted, unescaped content.
type Token struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// String returns the kind, followed by the text in parentheses for tokens
// whose text is not implied by the kind (e.g. IDENTIFIER(x)).
func (t Token) String() string {
	switch t.Kind {
	case KindConstant, KindIdentifier, KindString:
		return t.Kind.String() + "(" + t.Text + ")"
	default:
		return t.Kind.String()
	}
}

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}
