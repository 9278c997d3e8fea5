// Package scicalc provides the public API for the calculator engine.
package scicalc

import (
	"fortio.org/log"

	"nickandperla.net/scicalc/internal/eval"
	"nickandperla.net/scicalc/internal/rpn"
	"nickandperla.net/scicalc/internal/scanner"
	"nickandperla.net/scicalc/internal/store"
)

// Option configures a Calculator.
type Option func(*Calculator)

// WithMode sets the starting angle mode. An explicit mode wins over one
// persisted in the store.
func WithMode(m Mode) Option {
	return func(c *Calculator) {
		c.mode = m
		c.modeSet = true
	}
}

// WithMemoryStore keeps history in memory only.
func WithMemoryStore() Option {
	return func(c *Calculator) {
		c.store = store.NewMemory()
	}
}

// WithSQLiteStore configures SQLite persistence at the given path. When
// the database cannot be opened the session falls back to the in-memory
// store with a logged warning.
func WithSQLiteStore(path string) Option {
	return func(c *Calculator) {
		s, err := store.NewSQLite(path)
		if err != nil {
			log.Warnf("sqlite store %q unavailable, keeping history in memory: %v", path, err)
			return
		}
		c.store = s
	}
}

// WithStore supplies a custom store implementation.
func WithStore(s Store) Option {
	return func(c *Calculator) {
		c.store = s
	}
}

// WithHistoryLimit sets the entry count History falls back to when its
// caller does not name a limit.
func WithHistoryLimit(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.histLimit = n
		}
	}
}

// Mode selects the angle unit for trigonometric functions.
type Mode = eval.Mode

// Angle mode constants.
const (
	Deg = eval.Deg
	Rad = eval.Rad
)

// ParseMode parses a string into a Mode.
func ParseMode(s string) (Mode, bool) {
	return eval.ParseMode(s)
}

// Context carries the inputs of a single evaluation.
type Context = eval.Context

// LexError reports an invalid character or malformed literal.
type LexError = scanner.LexError

// SyntaxError reports a grammar violation found during translation.
type SyntaxError = rpn.SyntaxError

// MathError reports a runtime evaluation failure.
type MathError = eval.MathError

// Store records session history and settings.
type Store = store.Store

// Entry is one recorded evaluation.
type Entry = store.Entry
