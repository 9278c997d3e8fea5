package token

import (
	"math"
	"testing"
)

func TestOpFromRune(t *testing.T) {
	tests := []struct {
		r  rune
		op Op
		ok bool
	}{
		{'+', ADD, true},
		{'-', SUB, true},
		{'*', MUL, true},
		{'/', DIV, true},
		{'^', POW, true},
		{RuneMul, MUL, true},
		{RuneDiv, DIV, true},
		{'%', 0, false},
		{'!', 0, false},
	}
	for _, tt := range tests {
		op, ok := OpFromRune(tt.r)
		if ok != tt.ok {
			t.Errorf("OpFromRune(%q): expected ok=%v, got %v", tt.r, tt.ok, ok)
			continue
		}
		if ok && op != tt.op {
			t.Errorf("OpFromRune(%q): expected %v, got %v", tt.r, tt.op, op)
		}
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	if ADD.Precedence() != SUB.Precedence() {
		t.Errorf("+ and - should share a level")
	}
	if MUL.Precedence() != DIV.Precedence() {
		t.Errorf("* and / should share a level")
	}
	if !(ADD.Precedence() < MUL.Precedence()) {
		t.Errorf("additive must bind looser than multiplicative")
	}
	if !(MUL.Precedence() < POW.Precedence()) {
		t.Errorf("multiplicative must bind looser than exponentiation")
	}
	// The unary forms bind at the exponentiation level.
	if POS.Precedence() != POW.Precedence() || NEG.Precedence() != POW.Precedence() {
		t.Errorf("unary forms must share the exponentiation level")
	}
}

func TestRightAssoc(t *testing.T) {
	for _, op := range []Op{POW, POS, NEG} {
		if !op.RightAssoc() {
			t.Errorf("%v should be right-associative", op)
		}
	}
	for _, op := range []Op{ADD, SUB, MUL, DIV} {
		if op.RightAssoc() {
			t.Errorf("%v should be left-associative", op)
		}
	}
}

func TestUnary(t *testing.T) {
	for _, op := range []Op{POS, NEG} {
		if !op.Unary() {
			t.Errorf("%v should be unary", op)
		}
	}
	for _, op := range []Op{ADD, SUB, MUL, DIV, POW} {
		if op.Unary() {
			t.Errorf("%v should not be unary", op)
		}
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{ADD, "+"},
		{SUB, "-"},
		{MUL, "*"},
		{DIV, "/"},
		{POW, "^"},
		{POS, "u+"},
		{NEG, "u-"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String(): expected %q, got %q", tt.op, tt.want, got)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{NUMBER, "NUMBER"},
		{OPERATOR, "OPERATOR"},
		{LPAREN, "LPAREN"},
		{RPAREN, "RPAREN"},
		{COMMA, "COMMA"},
		{FUNCTION, "FUNCTION"},
		{VARIABLE, "VARIABLE"},
		{Kind(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String(): expected %q, got %q", tt.kind, tt.want, got)
		}
	}
}

func TestNameSets(t *testing.T) {
	for _, name := range []string{"sin", "cos", "tan", "asin", "acos", "atan", "log", "ln", "sqrt", "abs", "exp", "min", "max"} {
		if !IsFunc(name) {
			t.Errorf("IsFunc(%q): expected true", name)
		}
	}
	// The lookup is lowercase only; callers fold case first.
	for _, name := range []string{"SIN", "sinh", "pow", "ans", ""} {
		if IsFunc(name) {
			t.Errorf("IsFunc(%q): expected false", name)
		}
	}

	if v, ok := Constant("pi"); !ok || v != math.Pi {
		t.Errorf("Constant(pi): expected %g, got %g ok=%v", math.Pi, v, ok)
	}
	if v, ok := Constant("e"); !ok || v != math.E {
		t.Errorf("Constant(e): expected %g, got %g ok=%v", math.E, v, ok)
	}
	if _, ok := Constant("tau"); ok {
		t.Errorf("Constant(tau): expected no match")
	}

	if VarAns != "ans" {
		t.Errorf("expected variable name ans, got %q", VarAns)
	}
}
