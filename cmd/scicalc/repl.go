package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"nickandperla.net/scicalc/internal/helptext"
	"nickandperla.net/scicalc/pkg/scicalc"
)

// Alt+key mappings: Alt+key sends ESC (0x1b) followed by the key byte
var altKeyMappings = map[byte]string{
	'p': "π", // Alt+p - pi
	'x': "×", // Alt+x - multiply
	'd': "÷", // Alt+d - divide
}

func printBanner(calc *scicalc.Calculator) {
	fmt.Println("scicalc REPL (Ctrl+D to exit, help for the reference)")
	fmt.Println()
	fmt.Println("Glyphs (use Alt+key):")
	fmt.Println("  Alt+p → π    Alt+x → ×    Alt+d → ÷")
	fmt.Println()
	fmt.Printf("mode: %s\n", calc.Mode())
}

func runREPL(calc *scicalc.Calculator) {
	printBanner(calc)

	// Check if stdin is a terminal
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Not a TTY, fall back to basic mode
		runBasicREPL(calc)
		return
	}

	runRawREPL(calc)
}

// command runs a REPL meta-command. handled is false when the input is
// an expression for the evaluator.
func command(calc *scicalc.Calculator, input string) (output string, quit, handled bool) {
	switch strings.ToLower(input) {
	case "quit", "exit":
		return "", true, true
	case "help":
		return strings.TrimRight(helptext.Functions, "\n"), false, true
	case "deg":
		calc.SetMode(scicalc.Deg)
		return "mode: DEG", false, true
	case "rad":
		calc.SetMode(scicalc.Rad)
		return "mode: RAD", false, true
	case "hist":
		entries, err := calc.History(0)
		if err != nil {
			return fmt.Sprintf("Error: %v", err), false, true
		}
		if len(entries) == 0 {
			return "history is empty", false, true
		}
		// Oldest first reads naturally at a prompt.
		var b strings.Builder
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			fmt.Fprintf(&b, "[%s] %s = %s\n", e.Mode, e.Expr, formatResult(e.Result))
		}
		return strings.TrimRight(b.String(), "\n"), false, true
	case "clear":
		if err := calc.ClearHistory(); err != nil {
			return fmt.Sprintf("Error: %v", err), false, true
		}
		return "history cleared", false, true
	}
	return "", false, false
}

// runBasicREPL handles non-TTY input (piped input)
func runBasicREPL(calc *scicalc.Calculator) {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print(">>> ")

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if output, quit, handled := command(calc, input); handled {
			if quit {
				return
			}
			if output != "" {
				fmt.Println(output)
			}
			continue
		}

		v, err := calc.Eval(input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Println(formatResult(v))
	}
}

// runRawREPL handles TTY input with Alt+key glyphs and history recall
func runRawREPL(calc *scicalc.Calculator) {
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		runBasicREPL(calc)
		return
	}
	defer term.Restore(fd, oldState)

	var history []string

	for {
		fmt.Print(">>> ")

		line, eof := readLineRaw(fd, history)
		if eof {
			fmt.Print("\r\n")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		history = append(history, input)

		if output, quit, handled := command(calc, input); handled {
			if quit {
				return
			}
			if output != "" {
				// Raw mode needs explicit carriage returns
				fmt.Print(strings.ReplaceAll(output, "\n", "\r\n"))
				fmt.Print("\r\n")
			}
			continue
		}

		v, err := calc.Eval(input)
		if err != nil {
			fmt.Printf("Error: %v\r\n", err)
			continue
		}
		fmt.Print(formatResult(v) + "\r\n")
	}
}

// readLineRaw reads a line in raw mode with Alt+key glyph input and
// Up/Down recall over the session's past entries.
// Returns the line and whether EOF was encountered.
func readLineRaw(fd int, history []string) (string, bool) {
	var line []rune
	cursor := 0 // Position in line (for arrow key navigation)
	histIdx := len(history)
	buf := make([]byte, 1)

	// Helper to redraw line from cursor position
	redrawFromCursor := func() {
		// Clear from cursor to end of line
		fmt.Print("\x1b[K")
		// Print remaining characters
		for i := cursor; i < len(line); i++ {
			fmt.Print(string(line[i]))
		}
		// Move cursor back to position
		if cursor < len(line) {
			fmt.Printf("\x1b[%dD", len(line)-cursor)
		}
	}

	// Helper to swap the whole line out (history recall)
	replaceLine := func(s string) {
		if cursor > 0 {
			fmt.Printf("\x1b[%dD", cursor)
		}
		fmt.Print("\x1b[K")
		line = []rune(s)
		cursor = len(line)
		fmt.Print(s)
	}

	// Helper to insert runes at the cursor
	insertRunes := func(runes []rune) {
		newLine := make([]rune, 0, len(line)+len(runes))
		newLine = append(newLine, line[:cursor]...)
		newLine = append(newLine, runes...)
		newLine = append(newLine, line[cursor:]...)
		line = newLine
		cursor += len(runes)
		fmt.Print(string(runes))
		if cursor < len(line) {
			redrawFromCursor()
		}
	}

	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return string(line), true
		}

		b := buf[0]

		switch b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
			// Delete character at cursor (like Delete key)
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redrawFromCursor()
			}

		case 0x03: // Ctrl+C
			fmt.Print("^C\r\n")
			return "", false

		case 0x0d, 0x0a: // Enter (CR or LF)
			fmt.Print("\r\n")
			return string(line), false

		case 0x7f, 0x08: // Backspace (DEL or BS)
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Print("\b") // Move cursor back
				redrawFromCursor()
			}

		case 0x1b: // ESC - could be Alt+key or arrow key sequence
			nextBuf := make([]byte, 1)
			n, err := os.Stdin.Read(nextBuf)
			if err != nil || n == 0 {
				continue
			}

			if nextBuf[0] == '[' {
				// Arrow key sequence: ESC [ A/B/C/D
				arrowBuf := make([]byte, 1)
				n, err = os.Stdin.Read(arrowBuf)
				if err != nil || n == 0 {
					continue
				}

				switch arrowBuf[0] {
				case 'A': // Up arrow - recall an older entry
					if histIdx > 0 {
						histIdx--
						replaceLine(history[histIdx])
					}
				case 'B': // Down arrow - recall a newer entry
					if histIdx < len(history)-1 {
						histIdx++
						replaceLine(history[histIdx])
					} else if histIdx == len(history)-1 {
						histIdx++
						replaceLine("")
					}
				case 'C': // Right arrow
					if cursor < len(line) {
						cursor++
						fmt.Print("\x1b[C")
					}
				case 'D': // Left arrow
					if cursor > 0 {
						cursor--
						fmt.Print("\x1b[D")
					}
				case '3': // Delete key: ESC [ 3 ~
					delBuf := make([]byte, 1)
					os.Stdin.Read(delBuf)
					if delBuf[0] == '~' && cursor < len(line) {
						line = append(line[:cursor], line[cursor+1:]...)
						redrawFromCursor()
					}
				}
			} else {
				// Alt+key: ESC followed by key byte
				if glyph, ok := altKeyMappings[nextBuf[0]]; ok {
					insertRunes([]rune(glyph))
				}
			}

		case 0x01: // Ctrl+A - beginning of line
			if cursor > 0 {
				fmt.Printf("\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E - end of line
			if cursor < len(line) {
				fmt.Printf("\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K - kill to end of line
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Print("\x1b[K")
			}

		case 0x15: // Ctrl+U - kill to beginning of line
			if cursor > 0 {
				fmt.Printf("\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redrawFromCursor()
			}

		default:
			if b >= 0x20 && b < 0x7f {
				// Printable ASCII character
				insertRunes([]rune{rune(b)})
			} else if b >= 0x80 {
				// UTF-8 multi-byte sequence - read remaining bytes
				utfBuf := []byte{b}

				// Determine how many more bytes to read
				numBytes := 0
				if b&0xE0 == 0xC0 {
					numBytes = 1
				} else if b&0xF0 == 0xE0 {
					numBytes = 2
				} else if b&0xF8 == 0xF0 {
					numBytes = 3
				}

				for i := 0; i < numBytes; i++ {
					n, err := os.Stdin.Read(buf)
					if err != nil || n == 0 {
						break
					}
					utfBuf = append(utfBuf, buf[0])
				}

				insertRunes([]rune(string(utfBuf))[:1])
			}
		}
	}
}
