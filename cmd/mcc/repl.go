package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"mcc/codegen"
)

// replCmd lexes, parses, type-checks, and compiles one top-level
// declaration at a time, printing the resulting assembly fragment — handy
// for inspecting codegen for a single function without a full source file.
// It replaces the teacher's tree-walking replCmd/replCompiledCmd, which
// interpreted or ran bytecode for a whole accumulated buffer; here there is
// no runtime to execute against, only assembly to emit.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "interactively compile top-level declarations" }
func (*replCmd) Usage() string {
	return `repl:
  Read one function or global declaration at a time and print its assembly.
`
}

func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	var buf strings.Builder
	braces := 0

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			if err == io.EOF || err == readline.ErrInterrupt {
				return subcommands.ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}
		if strings.TrimSpace(line) == "exit" && buf.Len() == 0 {
			return subcommands.ExitSuccess
		}

		buf.WriteString(line)
		buf.WriteString("\n")
		braces += strings.Count(line, "{") - strings.Count(line, "}")

		if braces > 0 {
			rl.SetPrompt("... ")
			continue
		}
		rl.SetPrompt(">>> ")

		src := []byte(buf.String())
		buf.Reset()
		if strings.TrimSpace(string(src)) == "" {
			continue
		}

		globals, cerr := compileToAST(src)
		if cerr != nil {
			reportDiag(cerr, "<repl>", src)
			continue
		}
		if err := codegen.Generate(src, globals, os.Stdout); err != nil {
			reportDiag(err, "<repl>", src)
		}
	}
}
