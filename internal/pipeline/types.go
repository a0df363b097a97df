package pipeline

import "voice-task-automation/internal/model"

// TranscriptInput is the input for processing already-transcribed text.
type TranscriptInput struct {
	Transcript string
}

// RecordingInput is the input for processing a captured audio file.
type RecordingInput struct {
	AudioPath string
	// SaveTranscript writes the transcript next to the audio file, mirroring
	// what the capture shortcut expects to find afterwards.
	SaveTranscript bool
}

// Result describes one completed (or suppressed) submission.
type Result struct {
	Task         model.Task
	Transcript   string // transcript text, set when processing a recording
	SubmittedURL string // the URL-scheme call that delivered the task
	CalendarLink string // calendar event link, empty unless a due-dated task was scheduled
}
