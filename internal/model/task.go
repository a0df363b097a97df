package model

import "time"

// Task is the structured result of parsing one voice transcript.
// It is constructed once per transcript, serialized into an OmniFocus
// URL-scheme call, and discarded — never persisted.
type Task struct {
	Name      string     // task name with all recognized attribute clauses stripped; never empty
	Project   string     // from a "project <value>" clause
	Due       *time.Time // resolved absolute due time
	Defer     *time.Time // resolved absolute defer time
	Flag      bool       // from a "flag" clause
	Tags      []string   // from a "tag <list>" clause; no empties, no duplicates
	Note      string     // free note text, possibly rebuilt from bullet items
	NoteItems []string   // bullet-separated note segments, in spoken order
}

// Recording is an audio file claimed from the inbox for processing.
type Recording struct {
	Path       string
	ReceivedAt time.Time
}
