package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"mcc/ast"
	"mcc/codegen"
	"mcc/diag"
	"mcc/lexer"
	"mcc/parser"
)

// buildCmd compiles a source file to assembly, replacing the teacher's
// runCmd/emitBytecodeCmd: instead of running a bytecode VM, it writes GAS
// assembly text to stdout or a named output file.
type buildCmd struct {
	out string
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "compile a source file to x86-64 assembly" }
func (*buildCmd) Usage() string {
	return `build [-o out.s] <file>:
  Compile file (or "-" for standard input) to GAS assembly.
`
}

func (cmd *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "o", "-", "output path for the generated assembly (\"-\" for stdout)")
}

func (cmd *buildCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var out *os.File
	if cmd.out == "-" {
		out = os.Stdout
	} else {
		f, err := os.Create(cmd.out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 failed to create %s: %v\n", cmd.out, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		out = f
	}

	if err := codegen.Generate(src, globals, out); err != nil {
		reportDiag(err, filename, src)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// compileToAST runs the lex+parse pipeline shared by every subcommand.
func compileToAST(src []byte) ([]*ast.Obj, error) {
	toks, err := lexer.New(src).Scan()
	if err != nil {
		return nil, err
	}
	return parser.New(src, toks).Parse()
}

// reportDiag prints a *diag.Error with its source-line/caret rendering when
// possible, falling back to the bare error text.
func reportDiag(err error, filename string, src []byte) {
	if derr, ok := err.(*diag.Error); ok {
		fmt.Fprintln(os.Stderr, derr.Render(filename))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}
