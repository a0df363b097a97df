package watcher

import (
	"errors"
	"strings"
	"time"

	"voice-task-automation/internal/pipeline"
	"voice-task-automation/pkg/log"
)

// DefaultAudioExtensions covers the formats the dictation apps we ingest
// from actually produce.
var DefaultAudioExtensions = []string{".m4a", ".wav", ".mp3", ".flac", ".ogg"}

// Config controls the inbox polling loop.
type Config struct {
	InboxDir        string
	ArchiveDir      string
	PollInterval    time.Duration
	AudioExtensions []string
	LockStaleAfter  time.Duration
	SaveTranscripts bool
}

// Watcher polls an inbox directory for new recordings and transcripts and
// feeds them through the pipeline.
type Watcher struct {
	l   log.Logger
	uc  pipeline.UseCase
	cfg Config

	audioExts map[string]bool
}

// New creates a new Watcher instance.
func New(l log.Logger, uc pipeline.UseCase, cfg Config) (*Watcher, error) {
	if l == nil {
		return nil, errors.New("logger is required")
	}
	if uc == nil {
		return nil, errors.New("pipeline usecase is required")
	}
	if cfg.InboxDir == "" {
		return nil, errors.New("inbox directory is required")
	}
	if cfg.ArchiveDir == "" {
		return nil, errors.New("archive directory is required")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if len(cfg.AudioExtensions) == 0 {
		cfg.AudioExtensions = DefaultAudioExtensions
	}
	if cfg.LockStaleAfter <= 0 {
		cfg.LockStaleAfter = 10 * time.Minute
	}

	audioExts := make(map[string]bool, len(cfg.AudioExtensions))
	for _, ext := range cfg.AudioExtensions {
		audioExts[strings.ToLower(ext)] = true
	}

	return &Watcher{
		l:         l,
		uc:        uc,
		cfg:       cfg,
		audioExts: audioExts,
	}, nil
}
