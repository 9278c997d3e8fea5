// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner tokenizes calculator expressions.
package scanner

import (
	"fmt"
	"math"
	"strconv"
	"unicode"

	"nickandperla.net/scicalc/internal/token"
)

// LexError reports an unrecognized construct in the input text. Offset
// is the rune position where scanning stopped. The message is surfaced
// to the caller verbatim.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string { return e.Msg }

// Scanner walks an expression rune by rune. The whole input is held as
// a rune slice so number scanning can look arbitrarily far ahead before
// committing.
type Scanner struct {
	src []rune
	pos int
}

// New creates a Scanner over the given expression text.
func New(src string) *Scanner {
	return &Scanner{src: []rune(src)}
}

// Scan tokenizes an expression in one call.
func Scan(src string) ([]token.Token, error) {
	s := New(src)
	var toks []token.Token
	for {
		tok, ok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func (s *Scanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.src) && unicode.IsSpace(s.src[s.pos]) {
		s.pos++
	}
}

// Next returns the next token. The second result is false once the
// input is exhausted.
func (s *Scanner) Next() (token.Token, bool, error) {
	s.skipWhitespace()

	r, ok := s.peek()
	if !ok {
		return token.Token{}, false, nil
	}
	start := s.pos

	switch {
	case isDigit(r) || r == '.':
		tok, err := s.scanNumber()
		return tok, err == nil, err

	case isLetter(r):
		tok, err := s.scanName()
		return tok, err == nil, err

	case r == token.RunePi:
		s.pos++
		return token.Token{Kind: token.NUMBER, Value: math.Pi, Pos: start}, true, nil

	case r == '(':
		s.pos++
		return token.Token{Kind: token.LPAREN, Pos: start}, true, nil

	case r == ')':
		s.pos++
		return token.Token{Kind: token.RPAREN, Pos: start}, true, nil

	case r == ',':
		s.pos++
		return token.Token{Kind: token.COMMA, Pos: start}, true, nil
	}

	if op, ok := token.OpFromRune(r); ok {
		s.pos++
		return token.Token{Kind: token.OPERATOR, Op: op, Pos: start}, true, nil
	}

	return token.Token{}, false, &LexError{
		Offset: start,
		Msg:    fmt.Sprintf("unknown character: %c", r),
	}
}

// scanNumber consumes a numeric literal: digits with at most one
// decimal point (at least one digit overall), then an optional
// exponent. The e/E is taken as an exponent marker only when lookahead
// confirms a digit follows, optionally behind a sign; otherwise it is
// left in place for identifier scanning, so "2e" is the literal 2
// followed by the constant e.
func (s *Scanner) scanNumber() (token.Token, error) {
	start := s.pos
	digits := 0

	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
		digits++
	}
	if r, ok := s.peek(); ok && r == '.' {
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
			digits++
		}
	}
	if digits == 0 {
		// A lone decimal point.
		return token.Token{}, &LexError{
			Offset: start,
			Msg:    fmt.Sprintf("unknown character: %c", s.src[start]),
		}
	}

	if r, ok := s.peek(); ok && (r == 'e' || r == 'E') {
		mark := s.pos
		s.pos++
		if r, ok := s.peek(); ok && (r == '+' || r == '-') {
			s.pos++
		}
		expDigits := 0
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
			expDigits++
		}
		if expDigits == 0 {
			s.pos = mark
		}
	}

	lit := string(s.src[start:s.pos])
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return token.Token{}, &LexError{
			Offset: start,
			Msg:    fmt.Sprintf("malformed number: %s", lit),
		}
	}
	return token.Token{Kind: token.NUMBER, Value: v, Pos: start}, nil
}

// scanName consumes a letter run and classifies it: function name,
// constant, or the ans variable. Classification is case-insensitive.
func (s *Scanner) scanName() (token.Token, error) {
	start := s.pos
	for s.pos < len(s.src) && isLetter(s.src[s.pos]) {
		s.pos++
	}
	name := lower(string(s.src[start:s.pos]))

	switch {
	case token.IsFunc(name):
		return token.Token{Kind: token.FUNCTION, Name: name, Pos: start}, nil
	case name == token.VarAns:
		return token.Token{Kind: token.VARIABLE, Name: name, Pos: start}, nil
	}
	if v, ok := token.Constant(name); ok {
		return token.Token{Kind: token.NUMBER, Value: v, Pos: start}, nil
	}
	return token.Token{}, &LexError{
		Offset: start,
		Msg:    fmt.Sprintf("unknown token: %s", name),
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// lower folds ASCII letters without touching anything else.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
