package command

import "voice-task-automation/internal/model"

// Extractor turns a free-form voice transcript into a structured Task.
type Extractor interface {
	// Parse extracts a task name plus optional attribute clauses from the
	// transcript. It fails only on empty/whitespace-only input; any other
	// input yields a best-effort Task. Unrecognized clauses stay in the name.
	Parse(transcript string) (model.Task, error)
}
