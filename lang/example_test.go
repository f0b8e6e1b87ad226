package lang_test

import (
	"context"
	"os"

	"github.com/ardnew/strand/lang"
)

func Example() {
	store := lang.NewStore()
	sink := lang.NewTee(os.Stdout, nil)
	ctx := context.Background()

	lang.Interpret(ctx, `set a "hello" + SPACE + "big-world";`, store, sink)
	lang.Interpret(ctx, `reverse a; print a; printwordcount a;`, store, sink)
	lang.Interpret(ctx, `reverse missing; list;`, store, sink)
	// Output:
	// big-world hello
	// Wordcount is: 2
	// Error: Undefined variable: missing
	// Identifier list (1):
	// a: big-world hello
}

func ExampleParse() {
	prog, err := lang.Parse(lang.Tokenize(`set  a "x"+SPACE +"y" ;print a`))
	if err != nil {
		panic(err)
	}

	os.Stdout.WriteString(prog.String() + "\n")
	// Output:
	// set a "x" + SPACE + "y"; print a;
}
