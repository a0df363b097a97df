package dedupe

import (
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrDuplicate signals that a task with the same fingerprint was submitted
// within the suppression window. It is a skip signal, not a hard failure.
var ErrDuplicate = errors.New("duplicate submission within window")

// Window is a bounded, time-windowed record of recent submissions, keyed by
// normalized task-name fingerprint. Entries are not persisted across restarts.
type Window struct {
	entries *expirable.LRU[string, time.Time]
	ttl     time.Duration
	now     func() time.Time
}

// Option customizes the window.
type Option func(*Window)

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Window) {
		w.now = now
	}
}

// NewWindow creates a suppression window. ttl is how long a fingerprint
// blocks resubmission; maxEntries bounds memory.
func NewWindow(ttl time.Duration, maxEntries int, opts ...Option) *Window {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	w := &Window{
		entries: expirable.NewLRU[string, time.Time](maxEntries, nil, ttl),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Check returns ErrDuplicate when the task name's fingerprint was recorded
// within the window. The LRU evicts lazily, so the stored timestamp is
// compared against the window as well.
func (w *Window) Check(name string) error {
	last, ok := w.entries.Get(Fingerprint(name))
	if !ok {
		return nil
	}
	if w.now().Sub(last) < w.ttl {
		return ErrDuplicate
	}
	return nil
}

// Record marks a successful submission of the given task name.
func (w *Window) Record(name string) {
	w.entries.Add(Fingerprint(name), w.now())
}

// Fingerprint normalizes a task name for duplicate comparison: lower-cased,
// whitespace-collapsed.
func Fingerprint(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
