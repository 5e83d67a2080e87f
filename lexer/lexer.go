// Package lexer segments C source bytes into a flat token stream, following
// the segmentation priority order and escape-decoding rules of spec.md §4.3.
package lexer

import (
	"strconv"

	"mcc/ctype"
	"mcc/diag"
	"mcc/token"
)

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentCont(c byte) bool {
	return isLetter(c) || isDigit(c)
}

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// Lexer scans a single source buffer into a token slice. It never mutates
// the buffer; tokens keep only a byte offset into it for diagnostics.
type Lexer struct {
	src []byte
	pos int

	toks []token.Token
}

// New returns a Lexer over src. Per spec.md §6, the driver is responsible
// for ensuring src ends with "\n\0"; New enforces that here too so a caller
// that hands in raw file bytes still gets correct end-of-buffer behavior.
func New(src []byte) *Lexer {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, src...)
	if len(buf) == 0 || buf[len(buf)-1] != '\n' {
		buf = append(buf, '\n')
	}
	buf = append(buf, 0)
	return &Lexer{src: buf}
}

func (l *Lexer) cur() byte {
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	i := l.pos + offset
	if i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) atEnd() bool {
	return l.cur() == 0
}

func (l *Lexer) skipWhitespace() {
	for {
		c := l.cur()
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.pos++
			continue
		}
		break
	}
}

// skipLineComment consumes "// ... \n".
func (l *Lexer) skipLineComment() {
	for l.cur() != '\n' && !l.atEnd() {
		l.pos++
	}
}

// skipBlockComment consumes "/* ... */"; returns an error if unterminated.
func (l *Lexer) skipBlockComment() error {
	start := l.pos
	l.pos += 2 // past "/*"
	for {
		if l.atEnd() {
			return diag.Lexf(l.src, start, "unterminated block comment")
		}
		if l.cur() == '*' && l.peekAt(1) == '/' {
			l.pos += 2
			return nil
		}
		l.pos++
	}
}

// scanNumber consumes the longest decimal run starting at l.pos.
func (l *Lexer) scanNumber() {
	start := l.pos
	for isDigit(l.cur()) {
		l.pos++
	}
	spelling := string(l.src[start:l.pos])
	val, _ := strconv.ParseInt(spelling, 10, 64)
	l.toks = append(l.toks, token.Token{Kind: token.NUM, Lexeme: spelling, Pos: start, IVal: val})
}

// scanIdentifier consumes the longest [A-Za-z0-9_]* run and classifies it as
// IDENT or, if reserved, KEYWORD.
func (l *Lexer) scanIdentifier() {
	start := l.pos
	for isIdentCont(l.cur()) {
		l.pos++
	}
	spelling := string(l.src[start:l.pos])
	kind := token.IDENT
	if token.Keywords[spelling] {
		kind = token.KEYWORD
	}
	l.toks = append(l.toks, token.Token{Kind: kind, Lexeme: spelling, Pos: start})
}

// decodeEscape decodes the escape sequence beginning just after a `\` at
// l.pos, advances past it, and returns the decoded byte.
func (l *Lexer) decodeEscape() byte {
	c := l.cur()
	switch {
	case c >= '0' && c <= '7':
		// octal: 1-3 digits.
		val := 0
		for n := 0; n < 3 && l.cur() >= '0' && l.cur() <= '7'; n++ {
			val = val*8 + int(l.cur()-'0')
			l.pos++
		}
		return byte(val)
	case c == 'x':
		l.pos++
		val := 0
		for isHexDigit(l.cur()) {
			var d int
			switch {
			case isDigit(l.cur()):
				d = int(l.cur() - '0')
			case l.cur() >= 'a' && l.cur() <= 'f':
				d = int(l.cur()-'a') + 10
			default:
				d = int(l.cur()-'A') + 10
			}
			val = val*16 + d
			l.pos++
		}
		return byte(val)
	case c == 'a':
		l.pos++
		return '\a'
	case c == 'b':
		l.pos++
		return '\b'
	case c == 't':
		l.pos++
		return '\t'
	case c == 'n':
		l.pos++
		return '\n'
	case c == 'v':
		l.pos++
		return '\v'
	case c == 'f':
		l.pos++
		return '\f'
	case c == 'r':
		l.pos++
		return '\r'
	case c == 'e':
		l.pos++
		return 0x1b
	default:
		l.pos++
		return c
	}
}

// scanString consumes a `"..."` literal, decoding escapes, and appends a
// STRING token whose Lexeme/SVal hold the decoded payload (NUL-terminated)
// and whose Ty is an array-of-char of that length.
func (l *Lexer) scanString() error {
	start := l.pos
	l.pos++ // past opening quote
	var decoded []byte
	for {
		c := l.cur()
		if c == 0 || c == '\n' {
			return diag.Lexf(l.src, start, "unterminated string literal")
		}
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' {
			l.pos++
			if l.cur() == 'x' && !isHexDigit(l.peekAt(1)) {
				return diag.Lexf(l.src, l.pos-1, "invalid hex escape sequence")
			}
			decoded = append(decoded, l.decodeEscape())
			continue
		}
		decoded = append(decoded, c)
		l.pos++
	}
	decoded = append(decoded, 0)
	ty := ctype.ArrayOf(ctype.Char, len(decoded))
	l.toks = append(l.toks, token.Token{
		Kind:   token.STRING,
		Lexeme: string(decoded),
		Pos:    start,
		SVal:   decoded,
		Ty:     ty,
	})
	return nil
}

var twoBytePuncts = map[[2]byte]bool{
	{'=', '='}: true,
	{'!', '='}: true,
	{'<', '='}: true,
	{'>', '='}: true,
}

// isASCIIPunct reports whether c is any ASCII punctuation byte. Per spec.md
// §4.3 rule 7, every such byte tokenizes as a one-byte PUNCT, whether or not
// the grammar actually uses it — an out-of-grammar punctuator (e.g. '%', '?')
// is rejected later by the parser as a syntax error, not here as a lexical
// one.
func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') ||
		(c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') ||
		(c >= '{' && c <= '~')
}

// scanPunct consumes a punctuator, preferring the two-byte operators
// ==, !=, <=, >= over their one-byte prefixes, per spec.md §4.3 rule 7.
func (l *Lexer) scanPunct() error {
	start := l.pos
	if twoBytePuncts[[2]byte{l.cur(), l.peekAt(1)}] {
		spelling := string(l.src[start : start+2])
		l.pos += 2
		l.toks = append(l.toks, token.Token{Kind: token.PUNCT, Lexeme: spelling, Pos: start})
		return nil
	}
	if isASCIIPunct(l.cur()) {
		spelling := string(l.src[start : start+1])
		l.pos++
		l.toks = append(l.toks, token.Token{Kind: token.PUNCT, Lexeme: spelling, Pos: start})
		return nil
	}
	return diag.Lexf(l.src, start, "invalid token: '%c'", l.cur())
}

// Scan tokenizes the whole buffer and returns the resulting token slice,
// terminated by an EOF token, or the first lexical error encountered.
func (l *Lexer) Scan() ([]token.Token, error) {
	for {
		l.skipWhitespace()

		if l.atEnd() {
			break
		}

		c := l.cur()
		switch {
		case c == '/' && l.peekAt(1) == '/':
			l.skipLineComment()
		case c == '/' && l.peekAt(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return nil, err
			}
		case isDigit(c):
			l.scanNumber()
		case c == '"':
			if err := l.scanString(); err != nil {
				return nil, err
			}
		case isLetter(c):
			l.scanIdentifier()
		default:
			if err := l.scanPunct(); err != nil {
				return nil, err
			}
		}
	}

	l.toks = append(l.toks, token.Token{Kind: token.EOF, Pos: l.pos})
	return l.toks, nil
}
