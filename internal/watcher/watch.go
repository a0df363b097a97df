package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"voice-task-automation/internal/model"
	"voice-task-automation/internal/pipeline"
	"voice-task-automation/pkg/filelock"
)

const lockSuffix = ".lock"

// Run polls the inbox until the context is cancelled. Each tick sweeps the
// directory once; files that fail to process stay in place and are retried
// on the next tick.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.cfg.InboxDir, 0o755); err != nil {
		return fmt.Errorf("create inbox dir: %w", err)
	}
	if err := os.MkdirAll(w.cfg.ArchiveDir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	w.l.Infof(ctx, "watching %s every %s", w.cfg.InboxDir, w.cfg.PollInterval)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep processes every eligible file currently in the inbox.
func (w *Watcher) Sweep(ctx context.Context) {
	entries, err := os.ReadDir(w.cfg.InboxDir)
	if err != nil {
		w.l.Errorf(ctx, "read inbox: %v", err)
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasSuffix(name, lockSuffix) {
			continue
		}
		w.processFile(ctx, filepath.Join(w.cfg.InboxDir, name))
	}
}

func (w *Watcher) processFile(ctx context.Context, path string) {
	lock, err := filelock.Acquire(path+lockSuffix, w.cfg.LockStaleAfter)
	if err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			w.l.Debugf(ctx, "skipping %s: locked by another worker", path)
		} else {
			w.l.Errorf(ctx, "lock %s: %v", path, err)
		}
		return
	}
	defer lock.Release()

	// The file may have been archived by another sweep between ReadDir
	// and the lock.
	if _, err := os.Stat(path); err != nil {
		return
	}

	ext := strings.ToLower(filepath.Ext(path))
	sc := model.Scope{UserID: filepath.Base(path), Source: "watcher"}

	var out pipeline.Result
	switch {
	case w.audioExts[ext]:
		out, err = w.uc.ProcessRecording(ctx, sc, pipeline.RecordingInput{
			AudioPath:      path,
			SaveTranscript: w.cfg.SaveTranscripts,
		})
	case ext == ".txt":
		var raw []byte
		raw, err = os.ReadFile(path)
		if err == nil {
			out, err = w.uc.ProcessTranscript(ctx, sc, pipeline.TranscriptInput{Transcript: string(raw)})
		}
	default:
		w.l.Debugf(ctx, "skipping %s: unsupported extension %q", path, ext)
		return
	}

	switch {
	case err == nil:
		w.l.Infof(ctx, "processed %s: task %q", path, out.Task.Name)
	case errors.Is(err, pipeline.ErrDuplicateSuppressed):
		// Duplicates are done as far as the inbox is concerned.
		w.l.Infof(ctx, "processed %s: duplicate of recent task %q, skipped", path, out.Task.Name)
	default:
		w.l.Errorf(ctx, "process %s: %v", path, err)
		return
	}

	w.archive(ctx, path)
	if w.audioExts[ext] && w.cfg.SaveTranscripts {
		sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + ".txt"
		if _, statErr := os.Stat(sidecar); statErr == nil {
			w.archive(ctx, sidecar)
		}
	}
}

// archive moves a processed file out of the inbox. Name collisions in the
// archive get a timestamp suffix instead of overwriting.
func (w *Watcher) archive(ctx context.Context, path string) {
	base := filepath.Base(path)
	dest := filepath.Join(w.cfg.ArchiveDir, base)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		dest = filepath.Join(w.cfg.ArchiveDir, fmt.Sprintf("%s-%d%s", stem, time.Now().UnixNano(), ext))
	}
	if err := os.Rename(path, dest); err != nil {
		w.l.Errorf(ctx, "archive %s: %v", path, err)
		return
	}
	w.l.Debugf(ctx, "archived %s -> %s", path, dest)
}
