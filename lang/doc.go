// Package lang implements the strand command language: a line-oriented,
// semicolon-terminated language for manipulating named string variables.
//
// A line of input passes through three stages:
//
//   - [Tokenize] converts raw text into an ordered sequence of [Token].
//   - [Parse] consumes the tokens and builds a [Program] of [Statement]s.
//   - [Evaluate] executes the Program against a [Store] and emits output
//     lines to a [Sink].
//
// [Interpret] chains the three stages for a single line and returns a
// [Result] that distinguishes structural (parse) failures from semantic
// (evaluation) failures.
//
// # Grammar
//
// Informal EBNF:
//
//	Program     → Statement*
//	Statement   → ('set' | 'append') Identifier Expression
//	            | 'reverse' Identifier ';'
//	            | ('list' | 'exit') ';'
//	            | ('print' | 'printlength' | 'printwords' | 'printwordcount') Expression
//	Expression  → ('+' | Value)* (';' | EOF)
//	Value       → Identifier | Constant | String
//	Constant    → 'SPACE' | 'TAB' | 'NEWLINE'
//	Identifier  → [A-Za-z][A-Za-z0-9]*
//	String      → '"' ( '\' any | [^"\] )* '"'
//
// The '+' separator carries no meaning: the values of an expression are
// always concatenated, and a '+' may appear anywhere inside an expression.
//
// Keywords are matched before identifiers and without regard to word
// boundaries, so "settle" lexes as 'set' followed by the identifier "tle".
// Characters that match no rule are dropped.
//
// # Example
//
//	set greeting "hello" + SPACE + "world";
//	append greeting "!";
//	printwordcount greeting;
//	reverse greeting;
//	print greeting;
//	list;
//
// # Undefined identifiers
//
// Reading an identifier that was never assigned yields the empty string.
// The one exception is reverse, which reports an undefined-variable error
// instead of creating the variable.
//
// # Failure isolation
//
// Statements execute left to right. When one statement fails, an
// "Error: <message>" line is emitted, any effect the statement already
// committed is kept, and execution resumes with the next statement.
package lang
