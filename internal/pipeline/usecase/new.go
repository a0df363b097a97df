package usecase

import (
	"errors"
	"time"

	"golang.org/x/time/rate"

	"voice-task-automation/internal/command"
	"voice-task-automation/internal/dedupe"
	"voice-task-automation/internal/pipeline"
	pkgLog "voice-task-automation/pkg/log"
	"voice-task-automation/pkg/stt"
)

type implUseCase struct {
	l             pkgLog.Logger
	extractor     command.Extractor
	transcriber   stt.Transcriber // optional; ProcessRecording fails without it
	submitter     pipeline.Submitter
	window        *dedupe.Window
	limiter       *rate.Limiter
	calendar      pipeline.CalendarClient // optional
	calendarID    string
	timezone      string
	eventDuration time.Duration
}

// Config carries the optional knobs for New.
type Config struct {
	// RatePerMinute caps outbound submissions. Zero disables the limiter.
	RatePerMinute int
	// Timezone for calendar events.
	Timezone string
	// CalendarID selects the target calendar. Empty means "primary".
	CalendarID string
	// EventDuration is the calendar block length for due-dated tasks.
	EventDuration time.Duration
}

// New creates a new pipeline UseCase instance. transcriber and calendar may
// be nil; the corresponding steps degrade gracefully. The remaining
// dependencies are required.
func New(
	l pkgLog.Logger,
	extractor command.Extractor,
	transcriber stt.Transcriber,
	submitter pipeline.Submitter,
	window *dedupe.Window,
	calendar pipeline.CalendarClient,
	cfg Config,
) (*implUseCase, error) {
	if l == nil {
		return nil, errors.New("logger is required")
	}
	if extractor == nil {
		return nil, errors.New("extractor is required")
	}
	if submitter == nil {
		return nil, errors.New("submitter is required")
	}
	if window == nil {
		return nil, errors.New("dedupe window is required")
	}

	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), cfg.RatePerMinute)
	}

	eventDuration := cfg.EventDuration
	if eventDuration <= 0 {
		eventDuration = time.Hour
	}

	return &implUseCase{
		l:             l,
		extractor:     extractor,
		transcriber:   transcriber,
		submitter:     submitter,
		window:        window,
		limiter:       limiter,
		calendar:      calendar,
		calendarID:    cfg.CalendarID,
		timezone:      cfg.Timezone,
		eventDuration: eventDuration,
	}, nil
}
