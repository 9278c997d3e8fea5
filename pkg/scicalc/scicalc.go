package scicalc

import (
	"strings"
	"sync"
	"time"

	"fortio.org/log"

	"nickandperla.net/scicalc/internal/eval"
	"nickandperla.net/scicalc/internal/rpn"
	"nickandperla.net/scicalc/internal/scanner"
	"nickandperla.net/scicalc/internal/store"
)

func compile(text string) ([]rpn.Instr, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &SyntaxError{Msg: "empty expression"}
	}
	toks, err := scanner.Scan(text)
	if err != nil {
		return nil, err
	}
	return rpn.Translate(toks)
}

// Evaluate runs one expression through the scan, translate, evaluate
// pipeline and returns its value. It is a pure function of the text and
// the context: nothing is retained between calls and concurrent calls
// are safe.
func Evaluate(text string, ctx Context) (float64, error) {
	prog, err := compile(text)
	if err != nil {
		return 0, err
	}
	return eval.Evaluate(prog, ctx)
}

// Check validates an expression without evaluating it. The input is
// scanned and translated; any lexical or grammar error comes back, a
// valid expression returns nil.
func Check(text string) error {
	_, err := compile(text)
	return err
}

// Calculator is a stateful session over the engine: it tracks the angle
// mode and the running result, and records evaluations through a Store.
// All methods are safe for concurrent use.
type Calculator struct {
	mu        sync.Mutex
	mode      eval.Mode
	modeSet   bool
	ans       *float64
	store     store.Store
	histLimit int
}

// settingMode is the store key the angle mode persists under.
const settingMode = "mode"

// DefaultHistoryLimit caps History results when a call does not name a
// limit of its own.
const DefaultHistoryLimit = 20

// New creates a calculator session with the given options. Without a
// store option history lives in memory only. A persisted angle mode and
// the most recent recorded result are restored from the store, except
// that an explicit WithMode wins over the persisted mode.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		mode:      eval.Deg,
		histLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = store.NewMemory()
	}

	if !c.modeSet {
		if v, ok, err := c.store.Setting(settingMode); err == nil && ok {
			if m, valid := eval.ParseMode(v); valid {
				c.mode = m
			}
		}
	}
	if last, ok, err := c.store.Last(); err == nil && ok {
		v := last.Result
		c.ans = &v
	}
	return c
}

// Eval evaluates one expression under the session's mode and running
// result. On success the value becomes the new ans and a history entry
// is recorded; a failed history write is logged but does not fail the
// evaluation.
func (c *Calculator) Eval(text string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := Evaluate(text, eval.Context{Mode: c.mode, Ans: c.ans})
	if err != nil {
		return 0, err
	}
	c.ans = &v
	e := store.Entry{
		Expr:   strings.TrimSpace(text),
		Result: v,
		Mode:   c.mode.String(),
		When:   time.Now(),
	}
	if err := c.store.Append(e); err != nil {
		log.Warnf("history append failed: %v", err)
	}
	return v, nil
}

// Mode reports the session's angle mode.
func (c *Calculator) Mode() eval.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode switches the angle mode and persists it.
func (c *Calculator) SetMode(m eval.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	if err := c.store.PutSetting(settingMode, m.String()); err != nil {
		log.Warnf("mode persist failed: %v", err)
	}
}

// Ans reports the running result. ok is false until an evaluation has
// succeeded or a previous session's result was restored.
func (c *Calculator) Ans() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ans == nil {
		return 0, false
	}
	return *c.ans, true
}

// History returns the most recent entries, newest first. A limit of 0
// or less falls back to the session's configured history limit.
func (c *Calculator) History(limit int) ([]store.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if limit <= 0 {
		limit = c.histLimit
	}
	return c.store.Recent(limit)
}

// ClearHistory drops all recorded entries. Settings and the in-memory
// running result are kept.
func (c *Calculator) ClearHistory() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Clear()
}

// Close releases the underlying store.
func (c *Calculator) Close() error {
	return c.store.Close()
}
