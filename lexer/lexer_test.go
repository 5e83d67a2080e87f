package lexer

import (
	"testing"

	"mcc/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanPunctuatorsPreferTwoByteOperators(t *testing.T) {
	toks, err := New([]byte("== != <= >= < > = + - * /")).Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	want := []string{"==", "!=", "<=", ">=", "<", ">", "=", "+", "-", "*", "/"}
	if len(toks)-1 != len(want) { // -1 for EOF
		t.Fatalf("got %d tokens, want %d (+EOF)", len(toks)-1, len(want))
	}
	for i, w := range want {
		if toks[i].Lexeme != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Lexeme, w)
		}
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Errorf("last token kind = %v, want EOF", toks[len(toks)-1].Kind)
	}
}

func TestScanKeywordsVsIdentifiers(t *testing.T) {
	toks, err := New([]byte("int x = sizeof y;")).Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	wantKinds := []token.Kind{token.KEYWORD, token.IDENT, token.PUNCT, token.KEYWORD, token.IDENT, token.PUNCT, token.EOF}
	got := kinds(toks)
	if len(got) != len(wantKinds) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(wantKinds))
	}
	for i := range wantKinds {
		if got[i] != wantKinds[i] {
			t.Errorf("token %d kind = %v, want %v", i, got[i], wantKinds[i])
		}
	}
}

func TestScanNumberLiteral(t *testing.T) {
	toks, err := New([]byte("42")).Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if toks[0].Kind != token.NUM || toks[0].IVal != 42 {
		t.Errorf("got %+v, want NUM 42", toks[0])
	}
}

func TestScanStringLiteralDecodesEscapes(t *testing.T) {
	toks, err := New([]byte(`"a\nb\x41\101"`)).Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	got := toks[0].SVal
	want := []byte{'a', '\n', 'b', 'A', 'A', 0}
	if string(got) != string(want) {
		t.Errorf("decoded = %v, want %v", got, want)
	}
	if toks[0].Ty == nil || toks[0].Ty.Len != len(want) {
		t.Errorf("string literal type = %+v, want array len %d", toks[0].Ty, len(want))
	}
}

func TestScanUnterminatedStringIsLexError(t *testing.T) {
	_, err := New([]byte(`"abc`)).Scan()
	if err == nil {
		t.Fatal("expected an error for unterminated string literal")
	}
}

func TestScanUnterminatedBlockCommentIsLexError(t *testing.T) {
	_, err := New([]byte("/* comment")).Scan()
	if err == nil {
		t.Fatal("expected an error for unterminated block comment")
	}
}

func TestScanSkipsLineAndBlockComments(t *testing.T) {
	toks, err := New([]byte("int a; // trailing\n/* skip */ int b;")).Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	wantKinds := []token.Kind{token.KEYWORD, token.IDENT, token.PUNCT, token.KEYWORD, token.IDENT, token.PUNCT, token.EOF}
	got := kinds(toks)
	if len(got) != len(wantKinds) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(wantKinds))
	}
}

func TestScanOutOfGrammarPunctuationIsOneBytePunct(t *testing.T) {
	// Any ASCII punctuation byte tokenizes, even ones the grammar never
	// uses (spec.md §4.3 rule 7); it's the parser's job to reject them.
	toks, err := New([]byte("%^|~?:.#@")).Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	want := []string{"%", "^", "|", "~", "?", ":", ".", "#", "@"}
	if len(toks)-1 != len(want) { // -1 for EOF
		t.Fatalf("got %d tokens, want %d (+EOF)", len(toks)-1, len(want))
	}
	for i, w := range want {
		if toks[i].Kind != token.PUNCT || toks[i].Lexeme != w {
			t.Errorf("token %d = %+v, want PUNCT %q", i, toks[i], w)
		}
	}
}

func TestTokenSpellingRoundTrips(t *testing.T) {
	src := []byte("foobar123")
	toks, err := New(src).Scan()
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	tok := toks[0]
	respelled := string(src[tok.Pos : tok.Pos+len(tok.Lexeme)])
	if respelled != tok.Lexeme {
		t.Errorf("respelled = %q, want %q", respelled, tok.Lexeme)
	}
}
