// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package rpn translates token sequences into postfix instruction
// sequences using the shunting-yard algorithm. Grammar violations are
// detected during the single left-to-right scan; the output is consumed
// once, in order, by the evaluator.
package rpn

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/log"

	"nickandperla.net/scicalc/internal/token"
)

// SyntaxError reports a grammar violation found during translation. The
// message is surfaced to the caller verbatim.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return e.Msg }

// InstrKind classifies a postfix instruction.
type InstrKind int

const (
	NUMBER InstrKind = iota
	OPERATOR
	FUNCTION
	VARIABLE
)

// Instr is a single postfix instruction. Kind selects the payload:
// Value for NUMBER, Op for OPERATOR, Name (and Argc) for FUNCTION,
// Name for VARIABLE. Argc is resolved per call site from the number of
// comma-separated arguments scanned inside that paren group.
type Instr struct {
	Kind  InstrKind
	Value float64
	Op    token.Op
	Name  string
	Argc  int
}

// String returns a compact printable form of the instruction.
func (in Instr) String() string {
	switch in.Kind {
	case NUMBER:
		return strconv.FormatFloat(in.Value, 'g', -1, 64)
	case OPERATOR:
		return in.Op.String()
	case FUNCTION:
		return fmt.Sprintf("%s/%d", in.Name, in.Argc)
	case VARIABLE:
		return in.Name
	}
	return "?"
}

// Format renders an instruction sequence as a space-separated string.
func Format(prog []Instr) string {
	var b strings.Builder
	for i, in := range prog {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(in.String())
	}
	return b.String()
}

// lastKind tracks the last significant token scanned. It exists purely
// to disambiguate unary +/- and to validate comma and paren placement;
// it never appears in the output.
type lastKind int

const (
	atStart lastKind = iota
	afterValue
	afterOperator
	afterLParen
	afterRParen
	afterComma
	afterFunction
)

// group is one open-paren frame. call marks parens that belong to a
// function invocation; args counts the commas seen inside the frame.
type group struct {
	call bool
	args int
}

// Translate converts a token sequence to postfix form, or fails with a
// SyntaxError on the first grammar violation.
func Translate(toks []token.Token) ([]Instr, error) {
	var (
		out    []Instr
		stack  []token.Token
		groups []group
		last   = atStart
	)

	for _, tok := range toks {
		switch tok.Kind {
		case token.NUMBER:
			out = append(out, Instr{Kind: NUMBER, Value: tok.Value})
			last = afterValue

		case token.VARIABLE:
			out = append(out, Instr{Kind: VARIABLE, Name: tok.Name})
			last = afterValue

		case token.FUNCTION:
			stack = append(stack, tok)
			last = afterFunction

		case token.LPAREN:
			stack = append(stack, tok)
			groups = append(groups, group{call: last == afterFunction})
			last = afterLParen

		case token.COMMA:
			if len(groups) == 0 || !groups[len(groups)-1].call ||
				(last != afterValue && last != afterRParen) {
				return nil, &SyntaxError{Msg: "missing argument"}
			}
			for len(stack) > 0 && stack[len(stack)-1].Kind == token.OPERATOR {
				out = append(out, Instr{Kind: OPERATOR, Op: stack[len(stack)-1].Op})
				stack = stack[:len(stack)-1]
			}
			groups[len(groups)-1].args++
			last = afterComma

		case token.RPAREN:
			if last == afterComma || last == afterLParen {
				return nil, &SyntaxError{Msg: "missing argument"}
			}
			for {
				if len(stack) == 0 {
					return nil, &SyntaxError{Msg: "unbalanced parentheses"}
				}
				top := stack[len(stack)-1]
				if top.Kind == token.LPAREN {
					break
				}
				if top.Kind != token.OPERATOR {
					return nil, &SyntaxError{Msg: "malformed function call"}
				}
				out = append(out, Instr{Kind: OPERATOR, Op: top.Op})
				stack = stack[:len(stack)-1]
			}
			stack = stack[:len(stack)-1]

			g := groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			if g.call {
				if len(stack) == 0 || stack[len(stack)-1].Kind != token.FUNCTION {
					return nil, &SyntaxError{Msg: "malformed function call"}
				}
				fn := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				out = append(out, Instr{Kind: FUNCTION, Name: fn.Name, Argc: g.args + 1})
			}
			last = afterRParen

		case token.OPERATOR:
			op := tok.Op
			if last == atStart || last == afterOperator || last == afterLParen || last == afterComma {
				switch op {
				case token.ADD:
					op = token.POS
				case token.SUB:
					op = token.NEG
				}
			}
			if !op.Unary() {
				for len(stack) > 0 && stack[len(stack)-1].Kind == token.OPERATOR {
					top := stack[len(stack)-1].Op
					if top.Precedence() > op.Precedence() ||
						(top.Precedence() == op.Precedence() && !op.RightAssoc()) {
						out = append(out, Instr{Kind: OPERATOR, Op: top})
						stack = stack[:len(stack)-1]
						continue
					}
					break
				}
			}
			stack = append(stack, token.Token{Kind: token.OPERATOR, Op: op, Pos: tok.Pos})
			last = afterOperator
		}
	}

	switch last {
	case afterOperator, afterComma, afterLParen, afterFunction:
		return nil, &SyntaxError{Msg: "incomplete expression"}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch top.Kind {
		case token.LPAREN:
			return nil, &SyntaxError{Msg: "unbalanced parentheses"}
		case token.FUNCTION:
			return nil, &SyntaxError{Msg: "malformed function call"}
		}
		out = append(out, Instr{Kind: OPERATOR, Op: top.Op})
	}

	log.LogVf("rpn: %s", Format(out))
	return out, nil
}
