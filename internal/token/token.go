// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines the lexical vocabulary of calculator expressions:
// token kinds, operator symbols with their precedence and associativity,
// and the closed sets of function, constant, and variable names.
package token

import "math"

// Kind classifies a scanned token.
type Kind int

const (
	NUMBER Kind = iota
	OPERATOR
	LPAREN
	RPAREN
	COMMA
	FUNCTION
	VARIABLE
)

// String returns the string representation of a token kind.
func (k Kind) String() string {
	switch k {
	case NUMBER:
		return "NUMBER"
	case OPERATOR:
		return "OPERATOR"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case COMMA:
		return "COMMA"
	case FUNCTION:
		return "FUNCTION"
	case VARIABLE:
		return "VARIABLE"
	}
	return "UNKNOWN"
}

// Op identifies an operator symbol. POS and NEG are the synthetic unary
// forms of + and -; the scanner never produces them, the translator
// introduces them during disambiguation.
type Op int

const (
	ADD Op = iota
	SUB
	MUL
	DIV
	POW
	POS // unary +
	NEG // unary -
)

// Localized glyphs accepted in input alongside their ASCII forms.
const (
	RuneMul = '×' // U+00D7, normalized to *
	RuneDiv = '÷' // U+00F7, normalized to /
	RunePi  = 'π' // U+03C0, scanned as the constant pi
)

// OpFromRune returns the operator for a rune, normalizing the localized
// multiplication and division glyphs.
func OpFromRune(r rune) (Op, bool) {
	switch r {
	case '+':
		return ADD, true
	case '-':
		return SUB, true
	case '*', RuneMul:
		return MUL, true
	case '/', RuneDiv:
		return DIV, true
	case '^':
		return POW, true
	}
	return 0, false
}

// Precedence returns the binding level of an operator. The unary forms
// share the exponentiation level; together with right associativity and
// the translator's push-without-popping rule for incoming unary
// operators this makes -2^2 parse as -(2^2) and 2^-3 as 2^(-3).
func (o Op) Precedence() int {
	switch o {
	case ADD, SUB:
		return 1
	case MUL, DIV:
		return 2
	case POW, POS, NEG:
		return 3
	}
	return 0
}

// RightAssoc returns true for right-associative operators.
func (o Op) RightAssoc() bool {
	switch o {
	case POW, POS, NEG:
		return true
	}
	return false
}

// Unary returns true for the synthetic unary forms.
func (o Op) Unary() bool {
	return o == POS || o == NEG
}

// String returns the symbol for an operator.
func (o Op) String() string {
	switch o {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case POW:
		return "^"
	case POS:
		return "u+"
	case NEG:
		return "u-"
	}
	return "?"
}

// Token is a single lexical unit. Kind selects which payload field is
// meaningful: Value for NUMBER, Op for OPERATOR, Name for FUNCTION and
// VARIABLE. Pos is the rune offset of the token in the source text.
type Token struct {
	Kind  Kind
	Value float64
	Op    Op
	Name  string
	Pos   int
}

// VarAns is the only recognized variable name: the previous result.
const VarAns = "ans"

var funcNames = map[string]bool{
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"asin": true,
	"acos": true,
	"atan": true,
	"log":  true,
	"ln":   true,
	"sqrt": true,
	"abs":  true,
	"exp":  true,
	"min":  true,
	"max":  true,
}

// IsFunc reports whether name is a recognized function. Names are
// matched lowercase; the scanner folds case before the lookup.
func IsFunc(name string) bool {
	return funcNames[name]
}

// Constant returns the value of a named constant.
func Constant(name string) (float64, bool) {
	switch name {
	case "pi":
		return math.Pi, true
	case "e":
		return math.E, true
	}
	return 0, false
}
