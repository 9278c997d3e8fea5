package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nickandperla.net/scicalc/pkg/scicalc"
)

func TestEvalLines(t *testing.T) {
	calc := scicalc.New(scicalc.WithMemoryStore())
	defer calc.Close()

	input := strings.NewReader("# warmup\n3+4\n\nans*2\n")
	var out strings.Builder
	if err := evalLines(calc, input, "test", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "7\n14\n" {
		t.Errorf("expected \"7\\n14\\n\", got %q", out.String())
	}
}

func TestEvalLinesStopsOnError(t *testing.T) {
	calc := scicalc.New(scicalc.WithMemoryStore())
	defer calc.Close()

	input := strings.NewReader("1+1\n1/0\n5\n")
	var out strings.Builder
	err := evalLines(calc, input, "test", &out)
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if err.Error() != "test:2: division by zero" {
		t.Errorf("unexpected error %q", err)
	}
	// The failing line stops the run before line 3
	if out.String() != "2\n" {
		t.Errorf("expected only the first result, got %q", out.String())
	}
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{512, "512"},
		{0.125, "0.125"},
		{-4, "-4"},
		{1e21, "1e+21"},
	}
	for _, tt := range tests {
		if got := formatResult(tt.v); got != tt.want {
			t.Errorf("formatResult(%g): expected %q, got %q", tt.v, tt.want, got)
		}
	}
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.calc")
	if err := os.WriteFile(good, []byte("# fine\n2+2\nsin(30)\n"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := filepath.Join(dir, "bad.calc")
	if err := os.WriteFile(bad, []byte("2+2\n(3+4\nwat(1)\n"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out strings.Builder
	if code := runCheck([]string{good}, &out); code != 0 {
		t.Errorf("expected exit code 0, got %d\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "OK   "+good) {
		t.Errorf("expected OK line, got %q", out.String())
	}

	out.Reset()
	if code := runCheck([]string{good, bad}, &out); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "FAIL "+bad) {
		t.Errorf("expected FAIL line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "line 2: unbalanced parentheses") {
		t.Errorf("expected line 2 failure, got %q", out.String())
	}
	if !strings.Contains(out.String(), "line 3: unknown token: wat") {
		t.Errorf("expected line 3 failure, got %q", out.String())
	}
}

func TestReplCommands(t *testing.T) {
	calc := scicalc.New(scicalc.WithMemoryStore())
	defer calc.Close()

	if _, _, handled := command(calc, "2+2"); handled {
		t.Error("expected expressions to pass through")
	}

	output, quit, handled := command(calc, "rad")
	if !handled || quit {
		t.Fatalf("expected handled rad command, got handled=%v quit=%v", handled, quit)
	}
	if output != "mode: RAD" || calc.Mode() != scicalc.Rad {
		t.Errorf("expected RAD switch, got %q with mode %v", output, calc.Mode())
	}

	if _, err := calc.Eval("1+1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, _, handled = command(calc, "hist")
	if !handled || !strings.Contains(output, "[RAD] 1+1 = 2") {
		t.Errorf("unexpected hist output %q", output)
	}

	output, _, handled = command(calc, "help")
	if !handled || !strings.Contains(output, "sin") {
		t.Errorf("expected the function reference, got %q", output)
	}

	output, _, handled = command(calc, "clear")
	if !handled || output != "history cleared" {
		t.Errorf("unexpected clear output %q", output)
	}
	output, _, _ = command(calc, "hist")
	if output != "history is empty" {
		t.Errorf("expected empty history, got %q", output)
	}

	// Commands are case-insensitive
	if _, quit, handled := command(calc, "QUIT"); !handled || !quit {
		t.Error("expected QUIT to quit")
	}
}
