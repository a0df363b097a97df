package dedupe

import (
	"errors"
	"testing"
	"time"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Buy groceries", "buy groceries"},
		{"  Buy   Groceries  ", "buy groceries"},
		{"BUY\tGROCERIES", "buy groceries"},
	}
	for _, tt := range tests {
		if got := Fingerprint(tt.in); got != tt.want {
			t.Errorf("Fingerprint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWindowSuppression(t *testing.T) {
	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	w := NewWindow(60*time.Second, 100, WithClock(func() time.Time { return current }))

	if err := w.Check("Buy groceries"); err != nil {
		t.Fatalf("first check should pass: %v", err)
	}
	w.Record("Buy groceries")

	if err := w.Check("Buy groceries"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second check within window = %v, want ErrDuplicate", err)
	}

	// Different whitespace and case hit the same fingerprint.
	if err := w.Check("  buy   GROCERIES "); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("normalized variant = %v, want ErrDuplicate", err)
	}

	// A different task passes.
	if err := w.Check("Call the dentist"); err != nil {
		t.Fatalf("unrelated task should pass: %v", err)
	}

	// Past the window the same task is accepted again.
	current = current.Add(61 * time.Second)
	if err := w.Check("Buy groceries"); err != nil {
		t.Fatalf("check past window = %v, want nil", err)
	}
}
