package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"mcc/lexer"
)

// tokensCmd dumps the raw token stream, useful for inspecting the lexer in
// isolation the way the teacher's dumpAST flag inspected the parser.
type tokensCmd struct{}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "dump the lexer's token stream for a source file" }
func (*tokensCmd) Usage() string {
	return `tokens <file>:
  Print one token per line.
`
}

func (*tokensCmd) SetFlags(f *flag.FlagSet) {}

func (*tokensCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 no source file given\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	src, err := readSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read %s: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	toks, err := lexer.New(src).Scan()
	if err != nil {
		reportDiag(err, filename, src)
		return subcommands.ExitFailure
	}

	for _, tok := range toks {
		fmt.Println(tok.String())
	}
	return subcommands.ExitSuccess
}
