package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"mcc/parser"
)

// astCmd dumps the typed AST for a source file, replacing the teacher's
// dumpAST flag on replCompiledCmd with its own standalone subcommand.
type astCmd struct{}

func (*astCmd) Name() string     { return "ast" }
func (*astCmd) Synopsis() string { return "dump the parsed, type-annotated AST for a source file" }
func (*astCmd) Usage() string {
	return `ast <file>:
  Print an indented tree of every top-level declaration.
`
}

func (*astCmd) SetFlags(f *flag.FlagSet) {}

func (*astCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	globals, cerr := compileToAST(src)
	if cerr != nil {
		reportDiag(cerr, filename, src)
		return subcommands.ExitFailure
	}

	parser.Print(os.Stdout, globals)
	return subcommands.ExitSuccess
}
