package rpn

import (
	"errors"
	"testing"

	"nickandperla.net/scicalc/internal/scanner"
	"nickandperla.net/scicalc/internal/token"
)

func translate(t *testing.T, input string) ([]Instr, error) {
	t.Helper()
	toks, err := scanner.Scan(input)
	if err != nil {
		t.Fatalf("Scan(%q): unexpected error: %v", input, err)
	}
	return Translate(toks)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3", "2 3 +"},
		{"1+2*3", "1 2 3 * +"},
		{"(1+2)*3", "1 2 + 3 *"},
		{"10-3-2", "10 3 - 2 -"},
		{"8/2/2", "8 2 / 2 /"},
		{"2^3^2", "2 3 2 ^ ^"},
		{"-2^2", "2 2 ^ u-"},
		{"2^-3", "2 3 u- ^"},
		{"-2*3", "2 u- 3 *"},
		{"2*-3", "2 3 u- *"},
		{"-(-3)", "3 u- u-"},
		{"+2", "2 u+"},
		{"2++3", "2 3 u+ +"},
		{"sin(30)", "30 sin/1"},
		{"min(3,1,2)", "3 1 2 min/3"},
		{"min(1+2,3)", "1 2 + 3 min/2"},
		{"max(min(1,2),3)", "1 2 min/2 3 max/2"},
		{"sqrt(sqrt(16))", "16 sqrt/1 sqrt/1"},
		{"ans+1", "ans 1 +"},
		{"2*(3+4)^2", "2 3 4 + 2 ^ *"},
	}
	for _, tt := range tests {
		prog, err := translate(t, tt.input)
		if err != nil {
			t.Fatalf("Translate(%q): unexpected error: %v", tt.input, err)
		}
		if got := Format(prog); got != tt.want {
			t.Errorf("Translate(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestTranslateErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"((1+2)", "unbalanced parentheses"},
		{"1+2)", "unbalanced parentheses"},
		{"1+", "incomplete expression"},
		{"2*", "incomplete expression"},
		{"sin", "incomplete expression"},
		{"min(", "incomplete expression"},
		{"1,", "missing argument"},
		{"1,2", "missing argument"},
		{"()", "missing argument"},
		{"(1,2)", "missing argument"},
		{"min()", "missing argument"},
		{"min(,1)", "missing argument"},
		{"min(1,)", "missing argument"},
		{"min(1,,2)", "missing argument"},
		{"sin 30", "malformed function call"},
		{"(sin 30)", "malformed function call"},
		{"sin + 1", "malformed function call"},
	}
	for _, tt := range tests {
		_, err := translate(t, tt.input)
		if err == nil {
			t.Fatalf("Translate(%q): expected error, got none", tt.input)
		}
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("Translate(%q): expected SyntaxError, got %T", tt.input, err)
		}
		if synErr.Msg != tt.msg {
			t.Errorf("Translate(%q): expected %q, got %q", tt.input, tt.msg, synErr.Msg)
		}
	}
}

func TestArgCountPerCallSite(t *testing.T) {
	// The same function gets a distinct argument count at each call
	// site, resolved from the commas inside its own paren group.
	prog, err := translate(t, "min(min(1,2,3),min(4,5))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var counts []int
	for _, in := range prog {
		if in.Kind == FUNCTION {
			counts = append(counts, in.Argc)
		}
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 function instructions, got %d", len(counts))
	}
	if counts[0] != 3 || counts[1] != 2 || counts[2] != 2 {
		t.Errorf("expected argument counts [3 2 2], got %v", counts)
	}
}

func TestUnaryDisambiguation(t *testing.T) {
	// A +/- is unary after the start of input, an operator, an open
	// paren, or a comma, and binary after a value or close paren.
	tests := []struct {
		input string
		want  string
	}{
		{"-1", "1 u-"},
		{"(-1)", "1 u-"},
		{"min(-1,2)", "1 u- 2 min/2"},
		{"2-1", "2 1 -"},
		{"(1)-1", "1 1 -"},
		{"2^-3^2", "2 3 2 ^ u- ^"},
	}
	for _, tt := range tests {
		prog, err := translate(t, tt.input)
		if err != nil {
			t.Fatalf("Translate(%q): unexpected error: %v", tt.input, err)
		}
		if got := Format(prog); got != tt.want {
			t.Errorf("Translate(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestInstrString(t *testing.T) {
	tests := []struct {
		in   Instr
		want string
	}{
		{Instr{Kind: NUMBER, Value: 2.5}, "2.5"},
		{Instr{Kind: OPERATOR, Op: token.POW}, "^"},
		{Instr{Kind: FUNCTION, Name: "min", Argc: 3}, "min/3"},
		{Instr{Kind: VARIABLE, Name: "ans"}, "ans"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
