package lang

import (
	"log/slog"
)

// Parse builds a Program from the tokens of one line.
//
// Statements are parsed until the tokens are exhausted. The first malformed
// statement stops parsing and Parse returns a *ParseError with a nil
// Program; the caller's slice is never modified.
func Parse(tokens []Token, opts ...Option) (*Program, error) {
	o := makeOptions(opts...)

	p := &parser{tokens: tokens}
	prog := &Program{}

	for !p.done() {
		stmt, err := p.statement()
		if err != nil {
			o.logger.Trace("parse",
				slog.Int("statements", len(prog.Statements)),
				slog.Any("error", err),
			)

			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	o.logger.Trace("parse", slog.Int("statements", len(prog.Statements)))

	return prog, nil
}

// keywordStatement maps each statement keyword to the statement it starts.
var keywordStatement = map[Kind]StatementKind{
	KindSet:            StatementSet,
	KindAppend:         StatementAppend,
	KindReverse:        StatementReverse,
	KindList:           StatementList,
	KindExit:           StatementExit,
	KindPrint:          StatementPrint,
	KindPrintLength:    StatementPrintLength,
	KindPrintWords:     StatementPrintWords,
	KindPrintWordCount: StatementPrintWordCount,
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	p.pos++

	return t
}

func (p *parser) statement() (Statement, error) {
	tok := p.next()

	kind, ok := keywordStatement[tok.Kind]
	if !ok {
		return Statement{}, newParseError(tok.Kind,
			"Invalid statement start: "+tok.Kind.String())
	}

	stmt := Statement{Kind: kind}

	switch kind {
	case StatementSet, StatementAppend:
		id, err := p.identifier(tok)
		if err != nil {
			return Statement{}, err
		}

		stmt.Identifier = id

		if stmt.Expression, err = p.expression(); err != nil {
			return Statement{}, err
		}

	case StatementReverse:
		id, err := p.identifier(tok)
		if err != nil {
			return Statement{}, err
		}

		stmt.Identifier = id

		if err := p.end(); err != nil {
			return Statement{}, err
		}

	case StatementList, StatementExit:
		if err := p.end(); err != nil {
			return Statement{}, err
		}

	default:
		if p.done() {
			return Statement{}, newParseError(KindInvalid,
				"Expected expression after '"+tok.Kind.Keyword()+"'")
		}

		var err error
		if stmt.Expression, err = p.expression(); err != nil {
			return Statement{}, err
		}
	}

	return stmt, nil
}

// identifier consumes the target variable of the statement started by kw.
func (p *parser) identifier(kw Token) (string, error) {
	if p.done() || p.peek().Kind != KindIdentifier {
		found := KindInvalid
		if !p.done() {
			found = p.peek().Kind
		}

		return "", newParseError(found,
			"Expected identifier after '"+kw.Kind.Keyword()+"'")
	}

	return p.next().Text, nil
}

// end consumes the statement terminator.
func (p *parser) end() error {
	if p.done() || p.peek().Kind != KindEnd {
		found := KindInvalid
		if !p.done() {
			found = p.peek().Kind
		}

		return newParseError(found, "Missing statement terminator ';'")
	}

	p.pos++

	return nil
}

// expression consumes values up to and including the next terminator, or to
// the end of the tokens. Separators are skipped wherever they appear.
func (p *parser) expression() (Expression, error) {
	var expr Expression

	for !p.done() {
		switch p.peek().Kind {
		case KindEnd:
			p.pos++

			return expr, nil

		case KindPlus:
			p.pos++

			continue
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}

		expr = append(expr, v)
	}

	return expr, nil
}

func (p *parser) value() (Value, error) {
	if p.done() {
		return Value{}, newParseError(KindInvalid, "Incomplete value")
	}

	tok := p.next()

	switch tok.Kind {
	case KindIdentifier:
		return Value{Kind: ValueIdentifier, Text: tok.Text}, nil
	case KindConstant:
		return Value{Kind: ValueConstant, Text: tok.Text}, nil
	case KindString:
		return Value{Kind: ValueString, Text: tok.Text}, nil
	default:
		return Value{}, newParseError(tok.Kind, "Invalid value: "+tok.Kind.String())
	}
}
