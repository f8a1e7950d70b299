// File: regex/tokenizer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package regex

import (
	"errors"
	"testing"
)

func TestTokenizeTagsMetacharacters(t *testing.T) {
	toks, err := Tokenize([]byte(`a.[]-,^$|*+?(){}`))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []TokenKind{
		TokenLiteral, TokenDot, TokenOpenBracket, TokenCloseBracket,
		TokenDash, TokenComma, TokenCaret, TokenDollar, TokenPipe,
		TokenStar, TokenPlus, TokenQuestion, TokenOpenParen,
		TokenCloseParen, TokenOpenBrace, TokenCloseBrace,
	}
	if len(toks) != len(want) {
		t.Fatalf("token count = %d, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[0].Value != 'a' {
		t.Errorf("literal value = %q, want 'a'", toks[0].Value)
	}
}

func TestTokenizeEscapes(t *testing.T) {
	toks, err := Tokenize([]byte(`\w\.\\x`))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Token{
		{TokenEscaped, 'w'},
		{TokenEscaped, '.'},
		{TokenEscaped, '\\'},
		{TokenLiteral, 'x'},
	}
	if len(toks) != len(want) {
		t.Fatalf("token count = %d, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i] != w {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], w)
		}
	}
}

func TestTokenizeTrailingBackslash(t *testing.T) {
	_, err := Tokenize([]byte(`abc\`))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != InvalidEscapeSequence {
		t.Fatalf("err = %v, want InvalidEscapeSequence", err)
	}
}

func TestTokenizePreservesOrder(t *testing.T) {
	src := []byte("hello world")
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(toks) != len(src) {
		t.Fatalf("token count = %d, want %d", len(toks), len(src))
	}
	for i, b := range src {
		if toks[i].Kind != TokenLiteral || toks[i].Value != b {
			t.Errorf("token %d = %+v, want literal %q", i, toks[i], b)
		}
	}
}
