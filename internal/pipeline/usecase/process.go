package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"voice-task-automation/internal/command"
	"voice-task-automation/internal/dedupe"
	"voice-task-automation/internal/model"
	"voice-task-automation/internal/pipeline"
	"voice-task-automation/pkg/gcalendar"
)

// ProcessTranscript parses a transcript, applies duplicate suppression, and
// submits the task. The duplicate window is only updated after a successful
// submission, so a failed delivery can be retried.
func (uc *implUseCase) ProcessTranscript(ctx context.Context, sc model.Scope, input pipeline.TranscriptInput) (pipeline.Result, error) {
	task, err := uc.extractor.Parse(input.Transcript)
	if err != nil {
		if errors.Is(err, command.ErrEmptyInput) {
			return pipeline.Result{}, fmt.Errorf("%w: nothing to parse", pipeline.ErrEmptyTranscript)
		}
		return pipeline.Result{}, fmt.Errorf("failed to parse transcript: %w", err)
	}

	uc.l.Infof(ctx, "ProcessTranscript: user=%s source=%s task=%q", sc.UserID, sc.Source, task.Name)

	if err := uc.window.Check(task.Name); errors.Is(err, dedupe.ErrDuplicate) {
		return pipeline.Result{Task: task}, fmt.Errorf("%w: %q", pipeline.ErrDuplicateSuppressed, task.Name)
	}

	var reservation *rate.Reservation
	if uc.limiter != nil {
		reservation = uc.limiter.Reserve()
		if !reservation.OK() || reservation.Delay() > 0 {
			reservation.Cancel()
			return pipeline.Result{Task: task}, fmt.Errorf("%w: %q", pipeline.ErrRateLimited, task.Name)
		}
	}

	submittedURL, err := uc.submitter.Submit(ctx, task)
	if err != nil {
		if reservation != nil {
			// Refund the token so the retry is not charged twice.
			reservation.Cancel()
		}
		return pipeline.Result{}, fmt.Errorf("failed to submit task %q: %w", task.Name, err)
	}
	uc.window.Record(task.Name)

	calendarLink := uc.tryCreateCalendarEvent(ctx, task)

	uc.l.Infof(ctx, "ProcessTranscript: submitted %q", task.Name)

	return pipeline.Result{
		Task:         task,
		Transcript:   strings.TrimSpace(input.Transcript),
		SubmittedURL: submittedURL,
		CalendarLink: calendarLink,
	}, nil
}

// ProcessRecording transcribes an audio file and processes the transcript.
// The transcript is persisted next to the recording before submission so a
// failed delivery leaves something inspectable behind.
func (uc *implUseCase) ProcessRecording(ctx context.Context, sc model.Scope, input pipeline.RecordingInput) (pipeline.Result, error) {
	if uc.transcriber == nil {
		return pipeline.Result{}, pipeline.ErrNoTranscriber
	}

	uc.l.Infof(ctx, "ProcessRecording: user=%s file=%s", sc.UserID, input.AudioPath)

	transcript, err := uc.transcriber.Transcribe(ctx, input.AudioPath)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("failed to transcribe %s: %w", input.AudioPath, err)
	}

	uc.l.Infof(ctx, "ProcessRecording: transcript=%q", transcript)

	if input.SaveTranscript {
		if err := saveTranscript(input.AudioPath, transcript); err != nil {
			uc.l.Warnf(ctx, "ProcessRecording: failed to save transcript (non-fatal): %v", err)
		}
	}

	result, err := uc.ProcessTranscript(ctx, sc, pipeline.TranscriptInput{Transcript: transcript})
	result.Transcript = transcript
	return result, err
}

// tryCreateCalendarEvent blocks calendar time for a due-dated task.
// Returns the event link, or empty string on failure or when no calendar is
// configured; a calendar problem never fails the submission.
func (uc *implUseCase) tryCreateCalendarEvent(ctx context.Context, task model.Task) string {
	if uc.calendar == nil || task.Due == nil {
		return ""
	}

	description := task.Note
	if description != "" {
		description += "\n\n"
	}
	description += "Captured by voice"

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.calendarID,
		Summary:     task.Name,
		Description: description,
		StartTime:   *task.Due,
		EndTime:     task.Due.Add(uc.eventDuration),
		Timezone:    uc.timezone,
	})
	if err != nil {
		uc.l.Warnf(ctx, "calendar event creation failed for %q (non-fatal): %v", task.Name, err)
		return ""
	}
	return event.HtmlLink
}

// saveTranscript writes the transcript next to the audio file, replacing the
// audio extension with .txt.
func saveTranscript(audioPath, transcript string) error {
	path := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".txt"
	if err := os.WriteFile(path, []byte(transcript+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write transcript %s: %w", path, err)
	}
	return nil
}
