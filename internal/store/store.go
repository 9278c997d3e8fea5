// Package store persists calculator session state: the evaluation
// history and user settings.
package store

import "time"

// Entry is one evaluated expression together with its result and the
// angle mode it was evaluated under.
type Entry struct {
	ID     int64
	Expr   string
	Result float64
	Mode   string
	When   time.Time
}

// Store is the interface for session persistence.
type Store interface {
	// Append records an evaluation. A zero When is stamped with the
	// current time.
	Append(e Entry) error
	// Recent returns up to limit entries, newest first. limit <= 0
	// returns all.
	Recent(limit int) ([]Entry, error)
	// Last returns the most recent entry; ok is false when the history
	// is empty.
	Last() (Entry, bool, error)
	// Setting retrieves a setting value by key; ok is false when unset.
	Setting(key string) (string, bool, error)
	// PutSetting stores a setting value by key, overwriting.
	PutSetting(key, value string) error
	// Clear removes all history entries. Settings are kept.
	Clear() error
	// Close releases resources.
	Close() error
}
