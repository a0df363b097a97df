package extractor

import (
	"strings"
	"unicode"

	"voice-task-automation/internal/command"
	"voice-task-automation/internal/model"
)

type clause struct {
	key   string
	value string
}

// Parse implements command.Extractor.
//
// The transcript is scanned left to right for marker clauses; each marker and
// its value span are consumed, and whatever text remains becomes the task
// name. Date phrases that cannot be resolved are preserved in the note rather
// than dropped, so no spoken detail is lost.
func (e *implExtractor) Parse(transcript string) (model.Task, error) {
	raw := strings.TrimSpace(transcript)
	if raw == "" {
		return model.Task{}, command.ErrEmptyInput
	}

	clauses, name := e.splitClauses(raw)
	if name == "" {
		name = raw
	}

	task := model.Task{Name: name}
	var unresolved []string

	for _, c := range clauses {
		switch c.key {
		case "project":
			if c.value != "" {
				task.Project = c.value
			}
		case "due":
			if t, err := e.dates.Parse(c.value, e.now()); err != nil {
				unresolved = append(unresolved, "Due (unresolved): "+c.value)
			} else {
				due := t
				task.Due = &due
			}
		case "defer":
			if t, err := e.dates.Parse(c.value, e.now()); err != nil {
				unresolved = append(unresolved, "Defer (unresolved): "+c.value)
			} else {
				deferred := t
				task.Defer = &deferred
			}
		case "flag":
			task.Flag = true
		case "tag":
			task.Tags = appendTags(task.Tags, c.value)
		case "note":
			note, items := e.structureNote(c.value)
			if note == "" {
				continue
			}
			if task.Note != "" {
				task.Note += "\n" + note
			} else {
				task.Note = note
			}
			task.NoteItems = append(task.NoteItems, items...)
		}
	}

	for _, u := range unresolved {
		if task.Note != "" {
			task.Note += "\n" + u
		} else {
			task.Note = u
		}
	}

	e.applyGroceryTag(&task)

	return task, nil
}

// splitClauses consumes every recognized marker clause from the transcript and
// returns the clauses in marker-position order plus the leftover name text.
func (e *implExtractor) splitClauses(raw string) ([]clause, string) {
	matches := e.markerRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		// No clauses were removed, so there is no orphaned punctuation to
		// strip: the name is the transcript as spoken.
		return nil, strings.TrimSpace(raw)
	}

	var clauses []clause
	var nameParts []string
	last := 0

	for i, m := range matches {
		markerStart, markerEnd := m[0], m[1]
		key := canonicalKeyword(raw[m[2]:m[3]])

		if markerStart >= last {
			nameParts = append(nameParts, raw[last:markerStart])
		}

		if key == "flag" {
			// flag takes no value; text after it belongs to the name
			clauses = append(clauses, clause{key: key})
			last = markerEnd
			continue
		}

		valueEnd := len(raw)
		if i+1 < len(matches) {
			valueEnd = matches[i+1][0]
		}
		clauses = append(clauses, clause{
			key:   key,
			value: strings.TrimSpace(raw[markerEnd:valueEnd]),
		})
		last = valueEnd
	}

	if last < len(raw) {
		nameParts = append(nameParts, raw[last:])
	}

	return clauses, cleanName(strings.Join(nameParts, " "))
}

// appendTags splits a comma-separated tag list, trims each entry, and appends
// the ones not already present. Comparison is case-insensitive but tags keep
// their original case.
func appendTags(tags []string, list string) []string {
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if containsFold(tags, entry) {
			continue
		}
		tags = append(tags, entry)
	}
	return tags
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// cleanName collapses whitespace and strips orphaned punctuation left behind
// by clause removal.
func cleanName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}
