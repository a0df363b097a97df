package filelock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"
)

// ErrLocked is returned when the lock is held by another process.
var ErrLocked = errors.New("lock held by another process")

// Lock is an advisory file lock over a shared filesystem location. It is
// scoped to one submission: acquired before a recording is claimed and
// released on every exit path, success or failure.
type Lock struct {
	path     string
	released bool
}

// Acquire takes the lock by exclusively creating the lock file. A lock file
// older than staleAfter is treated as abandoned by a crashed process and
// broken. staleAfter <= 0 disables stale breaking.
func Acquire(path string, staleAfter time.Duration) (*Lock, error) {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			// pid is written for diagnostics only
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			_ = f.Close()
			return &Lock{path: path}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create lock file %s: %w", path, err)
		}

		info, statErr := os.Stat(path)
		if statErr != nil || staleAfter <= 0 || time.Since(info.ModTime()) < staleAfter {
			return nil, fmt.Errorf("%w: %s", ErrLocked, path)
		}
		// Stale lock: break it and retry once.
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to break stale lock %s: %w", path, rmErr)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrLocked, path)
}

// Release removes the lock file. Safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.released {
		return nil
	}
	l.released = true
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove lock file %s: %w", l.path, err)
	}
	return nil
}
