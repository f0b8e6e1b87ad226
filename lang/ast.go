package lang

import (
	"strconv"
	"strings"
)

// ValueKind identifies the kind of operand held by a [Value].
type ValueKind int

const (
	ValueIdentifier ValueKind = iota
	ValueConstant
	ValueString
)

// String returns the lower-case name of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueIdentifier:
		return "identifier"
	case ValueConstant:
		return "constant"
	case ValueString:
		return "string"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (k ValueKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (k ValueKind) MarshalYAML() (any, error) { return k.String(), nil }

// Value is one operand of an [Expression].
type Value struct {
	Kind ValueKind `json:"kind" yaml:"kind"`
	Text string    `json:"text" yaml:"text"`
}

// String returns the source form of the value.
func (v Value) String() string {
	if v.Kind == ValueString {
		return `"` + escape(v.Text) + `"`
	}

	return v.Text
}

// constants maps each named constant to the text it denotes.
var constants = map[string]string{
	"SPACE":   " ",
	"TAB":     "\t",
	"NEWLINE": "\n",
}

// Constants returns the names of all named constants.
func Constants() []string { return []string{"SPACE", "TAB", "NEWLINE"} }

// Expression is an ordered sequence of values whose strings are
// concatenated.
type Expression []Value

// String returns the source form of the expression with values separated by
// " + ".
func (e Expression) String() string {
	part := make([]string, len(e))
	for i, v := range e {
		part[i] = v.String()
	}

	return strings.Join(part, " + ")
}

// StatementKind identifies the operation performed by a [Statement].
type StatementKind int

const (
	StatementSet StatementKind = iota
	StatementAppend
	StatementReverse
	StatementList
	StatementExit
	StatementPrint
	StatementPrintLength
	StatementPrintWords
	StatementPrintWordCount
)

var statementKeyword = [...]Kind{
	StatementSet:            KindSet,
	StatementAppend:         KindAppend,
	StatementReverse:        KindReverse,
	StatementList:           KindList,
	StatementExit:           KindExit,
	StatementPrint:          KindPrint,
	StatementPrintLength:    KindPrintLength,
	StatementPrintWords:     KindPrintWords,
	StatementPrintWordCount: KindPrintWordCount,
}

// Keyword returns the token kind that introduces statements of this kind.
func (k StatementKind) Keyword() Kind {
	if k >= 0 && int(k) < len(statementKeyword) {
		return statementKeyword[k]
	}

	return KindInvalid
}

// String returns the keyword spelling of the statement kind.
func (k StatementKind) String() string {
	if kw := k.Keyword().Keyword(); kw != "" {
		return kw
	}

	return "StatementKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements [encoding.TextMarshaler].
func (k StatementKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// MarshalYAML implements the go-yaml InterfaceMarshaler.
func (k StatementKind) MarshalYAML() (any, error) { return k.String(), nil }

// HasIdentifier reports whether statements of this kind name a target
// variable.
func (k StatementKind) HasIdentifier() bool {
	switch k {
	case StatementSet, StatementAppend, StatementReverse:
		return true
	default:
		return false
	}
}

// HasExpression reports whether statements of this kind carry an
// expression.
func (k StatementKind) HasExpression() bool {
	switch k {
	case StatementReverse, StatementList, StatementExit:
		return false
	default:
		return true
	}
}

// Statement is one parsed command. Identifier is set only for set, append,
// and reverse; Expression only for set, append, and the print family.
type Statement struct {
	Kind       StatementKind `json:"kind"                 yaml:"kind"`
	Identifier string        `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Expression Expression    `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// String returns the canonical source form of the statement, including its
// terminator. Tokenizing and parsing the result yields an equal Statement.
func (s Statement) String() string {
	var sb strings.Builder

	sb.WriteString(s.Kind.String())

	if s.Kind.HasIdentifier() {
		sb.WriteByte(' ')
		sb.WriteString(s.Identifier)
	}

	if s.Kind.HasExpression() && len(s.Expression) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(s.Expression.String())
	}

	sb.WriteByte(';')

	return sb.String()
}

// Program is the ordered sequence of statements parsed from one line.
type Program struct {
	Statements []Statement `json:"statements" yaml:"statements"`
}

// Len returns the number of statements in the program.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}

	return len(p.Statements)
}

// String returns the canonical source form of the program, with statements
// separated by a single space.
func (p *Program) String() string {
	if p == nil {
		return ""
	}

	part := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		part[i] = s.String()
	}

	return strings.Join(part, " ")
}

// Assignment returns the set statement assigning value to name. Tabs and
// newlines in value are written as the TAB and NEWLINE constants so the
// statement's source form fits on one line.
func Assignment(name, value string) Statement {
	var (
		expr Expression
		lit  strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			expr = append(expr, Value{Kind: ValueString, Text: lit.String()})
			lit.Reset()
		}
	}

	for _, r := range value {
		switch r {
		case '\t':
			flush()
			expr = append(expr, Value{Kind: ValueConstant, Text: "TAB"})
		case '\n':
			flush()
			expr = append(expr, Value{Kind: ValueConstant, Text: "NEWLINE"})
		default:
			lit.WriteRune(r)
		}
	}

	flush()

	if expr == nil {
		expr = Expression{{Kind: ValueString}}
	}

	return Statement{Kind: StatementSet, Identifier: name, Expression: expr}
}
