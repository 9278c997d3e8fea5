package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"nickandperla.net/scicalc/pkg/scicalc"
)

// checkResult holds the outcome of checking a single file.
type checkResult struct {
	path   string
	errors []string
}

// checkFile validates every expression in a file against the scanner
// and translator without evaluating anything. Blank lines and #
// comments are skipped.
func checkFile(path string) checkResult {
	f, err := os.Open(path)
	if err != nil {
		return checkResult{
			path:   path,
			errors: []string{fmt.Sprintf("read error: %v", err)},
		}
	}
	defer f.Close()
	return checkResult{path: path, errors: checkLines(f)}
}

func checkLines(r io.Reader) []string {
	var errs []string
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := scicalc.Check(line); err != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", lineno, err))
		}
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Sprintf("read error: %v", err))
	}
	return errs
}

// runCheck validates each named file and writes a per-file report with
// a summary. The returned code is non-zero when any file fails.
func runCheck(paths []string, w io.Writer) int {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: scicalc -check FILE [FILE...]")
		return 1
	}

	passed := 0
	failed := 0

	for _, p := range paths {
		result := checkFile(p)
		if len(result.errors) > 0 {
			failed++
			fmt.Fprintf(w, "FAIL %s\n", p)
			for _, e := range result.errors {
				fmt.Fprintf(w, "     %s\n", e)
			}
		} else {
			passed++
			fmt.Fprintf(w, "OK   %s\n", p)
		}
	}

	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "Passed: %d\n", passed)
	fmt.Fprintf(w, "Failed: %d\n", failed)
	fmt.Fprintf(w, "Total:  %d\n", len(paths))

	if failed > 0 {
		return 1
	}
	return 0
}
