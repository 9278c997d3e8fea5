// Command scicalc is the scientific calculator CLI.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fortio.org/log"

	"nickandperla.net/scicalc/pkg/scicalc"
)

func main() {
	var (
		evalStr  = flag.String("e", "", "Evaluate one expression and exit")
		file     = flag.String("f", "", "Evaluate a file of expressions, one per line")
		dbPath   = flag.String("db", "scicalc.db", "SQLite session database path")
		noDB     = flag.Bool("no-db", false, "Keep the session in memory only")
		modeFlag = flag.String("mode", "deg", "Angle mode: deg or rad")
		check    = flag.Bool("check", false, "Validate expression files without evaluating")
		verbose  = flag.Bool("v", false, "Verbose diagnostics")
	)

	flag.Parse()

	if *verbose {
		log.SetLogLevel(log.Verbose)
	}

	if *check {
		os.Exit(runCheck(flag.Args(), os.Stdout))
	}

	// Build options
	opts := []scicalc.Option{}
	if *noDB {
		opts = append(opts, scicalc.WithMemoryStore())
	} else {
		opts = append(opts, scicalc.WithSQLiteStore(*dbPath))
	}

	mode, ok := scicalc.ParseMode(*modeFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown mode: %s (use deg or rad)\n", *modeFlag)
		os.Exit(1)
	}
	// An explicit -mode beats the mode persisted in the session database.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "mode" {
			opts = append(opts, scicalc.WithMode(mode))
		}
	})

	calc := scicalc.New(opts...)
	defer calc.Close()

	switch {
	case *evalStr != "":
		v, err := calc.Eval(*evalStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(formatResult(v))

	case *file != "":
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		err = evalLines(calc, f, *file, os.Stdout)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case !isTerminal(os.Stdin):
		// Piped input: one expression per line
		if err := evalLines(calc, os.Stdin, "stdin", os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		runREPL(calc)
	}
}

// formatResult renders a value in its shortest round-trip form.
func formatResult(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// evalLines evaluates one expression per line and prints each result.
// Blank lines and # comments are skipped. ans carries from line to
// line; the first failure stops the run with a name:line error.
func evalLines(calc *scicalc.Calculator, r io.Reader, name string, w io.Writer) error {
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := calc.Eval(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %v", name, lineno, err)
		}
		fmt.Fprintln(w, formatResult(v))
	}
	return sc.Err()
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
