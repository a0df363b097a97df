package usecase_test

import (
	"context"
	"testing"
	"time"

	"voice-task-automation/internal/command"
	"voice-task-automation/internal/command/extractor"
	"voice-task-automation/internal/dedupe"
	"voice-task-automation/internal/model"
	"voice-task-automation/internal/pipeline"
	"voice-task-automation/internal/pipeline/usecase"
	"voice-task-automation/pkg/datemath"
	"voice-task-automation/pkg/gcalendar"
	"voice-task-automation/pkg/stt"
)

// Wednesday, May 1, 2024, 10:00 UTC
var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)    {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)    {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)   {}

type mockSubmitter struct {
	submitted []model.Task
	err       error
}

func (m *mockSubmitter) Submit(ctx context.Context, task model.Task) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.submitted = append(m.submitted, task)
	return "omnifocus:///add?name=" + task.Name, nil
}

type mockCalendar struct {
	requests []gcalendar.CreateEventRequest
	err      error
}

func (m *mockCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.requests = append(m.requests, req)
	return &gcalendar.Event{HtmlLink: "https://calendar.google.com/event-1"}, nil
}

type mockTranscriber struct {
	text string
	err  error
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return m.text, m.err
}

func newTestExtractor(t *testing.T) command.Extractor {
	t.Helper()
	dates, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("failed to create date parser: %v", err)
	}
	vocab := command.DefaultVocabulary()
	vocab.GroceryTerms = nil
	e, err := extractor.New(vocab, dates, extractor.WithClock(func() time.Time { return baseTime }))
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}
	return e
}

func newUseCase(t *testing.T, transcriber stt.Transcriber, submitter pipeline.Submitter,
	window *dedupe.Window, calendar pipeline.CalendarClient, cfg usecase.Config) pipeline.UseCase {
	t.Helper()
	uc, err := usecase.New(&mockLogger{}, newTestExtractor(t), transcriber, submitter, window, calendar, cfg)
	if err != nil {
		t.Fatalf("failed to create usecase: %v", err)
	}
	return uc
}
