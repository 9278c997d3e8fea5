// Package eval executes postfix instruction sequences. Evaluation is a
// pure function of the instruction sequence and a per-call Context;
// nothing is retained between calls and no locking is needed.
package eval

import (
	"math"
	"strings"

	"fortio.org/log"

	"nickandperla.net/scicalc/internal/rpn"
	"nickandperla.net/scicalc/internal/token"
)

// Mode selects the angle unit for trigonometric functions.
type Mode int

const (
	// Deg treats trig arguments and inverse-trig results as degrees.
	Deg Mode = iota
	// Rad is untranslated radians.
	Rad
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	switch m {
	case Deg:
		return "DEG"
	case Rad:
		return "RAD"
	default:
		return "UNKNOWN"
	}
}

// ParseMode parses a string into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToUpper(s) {
	case "DEG":
		return Deg, true
	case "RAD":
		return Rad, true
	default:
		return Deg, false
	}
}

// Context carries the per-call evaluation inputs. Ans is the previous
// result; nil means the ans variable is undefined and referencing it
// fails.
type Context struct {
	Mode Mode
	Ans  *float64
}

// MathError reports a runtime evaluation failure: division by zero, an
// undefined variable, a domain or arity violation, or a non-finite
// result. Fn names the function or operator involved when one is. The
// message is surfaced to the caller verbatim.
type MathError struct {
	Fn  string
	Msg string
}

func (e *MathError) Error() string { return e.Msg }

func errMalformed() *MathError { return &MathError{Msg: "malformed expression"} }

// Evaluate consumes a postfix instruction sequence left to right and
// returns the single resulting value. The operand stack must hold
// exactly one value at the end, and that value must be finite.
func Evaluate(prog []rpn.Instr, ctx Context) (float64, error) {
	var st stack

	for _, in := range prog {
		switch in.Kind {
		case rpn.NUMBER:
			st.push(in.Value)

		case rpn.VARIABLE:
			if in.Name != token.VarAns {
				return 0, errMalformed()
			}
			if ctx.Ans == nil {
				return 0, &MathError{Fn: in.Name, Msg: "ans undefined"}
			}
			st.push(*ctx.Ans)

		case rpn.OPERATOR:
			if in.Op.Unary() {
				x, ok := st.pop()
				if !ok {
					return 0, errMalformed()
				}
				if in.Op == token.NEG {
					x = -x
				}
				st.push(x)
				break
			}
			// Right operand first: it is on top of the stack.
			right, ok := st.pop()
			if !ok {
				return 0, errMalformed()
			}
			left, ok := st.pop()
			if !ok {
				return 0, errMalformed()
			}
			v, err := applyBinary(in.Op, left, right)
			if err != nil {
				return 0, err
			}
			st.push(v)

		case rpn.FUNCTION:
			args, ok := st.popN(in.Argc)
			if !ok {
				return 0, errMalformed()
			}
			v, err := call(in.Name, args, ctx.Mode)
			if err != nil {
				return 0, err
			}
			st.push(v)
		}
	}

	if len(st) != 1 {
		return 0, errMalformed()
	}
	v := st[0]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &MathError{Msg: "result is not finite"}
	}
	log.LogVf("eval: %s = %g", rpn.Format(prog), v)
	return v, nil
}

func applyBinary(op token.Op, left, right float64) (float64, error) {
	switch op {
	case token.ADD:
		return left + right, nil
	case token.SUB:
		return left - right, nil
	case token.MUL:
		return left * right, nil
	case token.DIV:
		if right == 0 {
			return 0, &MathError{Fn: "/", Msg: "division by zero"}
		}
		return left / right, nil
	case token.POW:
		return math.Pow(left, right), nil
	}
	return 0, errMalformed()
}

// stack is the transient operand stack. popN removes the top n values
// and hands them back in their original left-to-right order; the slice
// is never reversed.
type stack []float64

func (s *stack) push(v float64) {
	*s = append(*s, v)
}

func (s *stack) pop() (float64, bool) {
	if len(*s) == 0 {
		return 0, false
	}
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v, true
}

func (s *stack) popN(n int) ([]float64, bool) {
	if n < 0 || len(*s) < n {
		return nil, false
	}
	args := (*s)[len(*s)-n:]
	*s = (*s)[:len(*s)-n]
	return args, true
}
