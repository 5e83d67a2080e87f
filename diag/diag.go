// Package diag formats compiler diagnostics the way the original tool does:
// a "file:line: message" header, the offending source line, and a caret
// pointing at the exact byte that triggered the error.
//
// Unlike a typical C compiler's error_at (which calls exit(1) directly),
// errors here are ordinary Go error values that bubble up through lexer,
// parser, and codegen return values. Only the CLI driver decides to print
// one and set a non-zero exit status.
package diag

import (
	"fmt"
	"strings"
)

// Kind distinguishes the taxonomy of error from spec.md §7.
type Kind int

const (
	Lexical Kind = iota
	Syntactic
	Semantic
	Internal
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntactic:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Internal:
		return "internal error"
	default:
		return "error"
	}
}

// Error is a single formatted diagnostic anchored at a byte offset into a
// source buffer. Line and Column are computed eagerly at construction time
// (not lazily from a raw pointer) so the originating buffer need not
// outlive the error.
type Error struct {
	Kind    Kind
	Message string
	Pos     int
	Line    int
	Column  int

	lineText string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (line %d, column %d)", e.Kind, e.Message, e.Line+1, e.Column+1)
}

// Render reproduces the classic "filename:line: message" + source line +
// caret layout described by spec.md §4.1. Internal-invariant failures abort
// without a caret (spec.md §7): they indicate a bug in this compiler, not a
// location in the user's source worth pointing at.
func (e *Error) Render(filename string) string {
	prefix := fmt.Sprintf("%s:%d: ", filename, e.Line+1)
	if e.Kind == Internal {
		return prefix + e.Message
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(e.Message)
	b.WriteByte('\n')
	b.WriteString(e.lineText)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", len(prefix)+e.Column))
	b.WriteString("^ ")
	b.WriteString(e.Message)
	return b.String()
}

// New builds an Error by locating pos within src: scanning backward to the
// enclosing line's start (or buffer start) and forward to its end (or
// buffer end), and counting newlines from the start of the buffer to
// derive the line number, per spec.md §4.1.
func New(kind Kind, src []byte, pos int, format string, args ...any) *Error {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}

	lineStart := pos
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := pos
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}

	line := 0
	for i := 0; i < lineStart; i++ {
		if src[i] == '\n' {
			line++
		}
	}

	return &Error{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Line:     line,
		Column:   pos - lineStart,
		lineText: string(src[lineStart:lineEnd]),
	}
}

// Lexf builds a Lexical error at pos.
func Lexf(src []byte, pos int, format string, args ...any) *Error {
	return New(Lexical, src, pos, format, args...)
}

// Syntaxf builds a Syntactic error at pos.
func Syntaxf(src []byte, pos int, format string, args ...any) *Error {
	return New(Syntactic, src, pos, format, args...)
}

// Semanticf builds a Semantic error at pos.
func Semanticf(src []byte, pos int, format string, args ...any) *Error {
	return New(Semantic, src, pos, format, args...)
}

// Internalf builds an Internal error at pos, used only for compiler
// invariant violations (e.g. a non-zero evaluation-stack depth between
// statements) that indicate a bug in this compiler rather than the input.
func Internalf(src []byte, pos int, format string, args ...any) *Error {
	return New(Internal, src, pos, format, args...)
}
