package pipeline

import (
	"context"

	"voice-task-automation/internal/model"
	"voice-task-automation/pkg/gcalendar"
)

// UseCase is the business logic for turning captured speech into submitted tasks.
type UseCase interface {
	// ProcessTranscript parses a transcript, checks the duplicate window, and
	// submits the resulting task to the task manager.
	ProcessTranscript(ctx context.Context, sc model.Scope, input TranscriptInput) (Result, error)

	// ProcessRecording transcribes an audio file, saves the transcript next to
	// it, then processes the transcript.
	ProcessRecording(ctx context.Context, sc model.Scope, input RecordingInput) (Result, error)
}

// Submitter delivers a finished task to the external task manager and
// returns the URL-scheme call it made.
type Submitter interface {
	Submit(ctx context.Context, task model.Task) (string, error)
}

// CalendarClient blocks calendar time for due-dated tasks.
type CalendarClient interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}
