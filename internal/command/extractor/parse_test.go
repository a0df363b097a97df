package extractor_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"voice-task-automation/internal/command"
	"voice-task-automation/internal/command/extractor"
	"voice-task-automation/internal/model"
	"voice-task-automation/pkg/datemath"
)

// Wednesday, May 1, 2024, 10:00 UTC
var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestExtractor(t *testing.T, vocab command.Vocabulary) command.Extractor {
	t.Helper()
	dates, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("failed to create date parser: %v", err)
	}
	e, err := extractor.New(vocab, dates, extractor.WithClock(func() time.Time { return baseTime }))
	if err != nil {
		t.Fatalf("failed to create extractor: %v", err)
	}
	return e
}

// plainVocabulary has no grocery terms so tests of the clause grammar are not
// entangled with the auto-tagging rule.
func plainVocabulary() command.Vocabulary {
	v := command.DefaultVocabulary()
	v.GroceryTerms = nil
	return v
}

func TestParseEmptyInput(t *testing.T) {
	e := newTestExtractor(t, plainVocabulary())

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := e.Parse(input)
		if !errors.Is(err, command.ErrEmptyInput) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestParseNoMarkers(t *testing.T) {
	e := newTestExtractor(t, plainVocabulary())

	// Without markers the name is the trimmed transcript as spoken:
	// terminal punctuation and internal spacing stay intact.
	tests := []struct {
		transcript string
		wantName   string
	}{
		{"  Call the dentist about Thursday  ", "Call the dentist about Thursday"},
		{"Buy milk.", "Buy milk."},
		{"Call  the   dentist", "Call  the   dentist"},
		{"Ship it!", "Ship it!"},
	}
	for _, tt := range tests {
		task, err := e.Parse(tt.transcript)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.transcript, err)
		}
		if task.Name != tt.wantName {
			t.Errorf("Parse(%q) Name = %q, want %q", tt.transcript, task.Name, tt.wantName)
		}
		if task.Project != "" || task.Due != nil || task.Defer != nil || task.Flag ||
			len(task.Tags) != 0 || task.Note != "" || len(task.NoteItems) != 0 {
			t.Errorf("Parse(%q): expected all attribute fields empty, got %+v", tt.transcript, task)
		}
	}
}

func TestParseEndToEnd(t *testing.T) {
	e := newTestExtractor(t, plainVocabulary())

	task, err := e.Parse("Buy groceries hashtag project Errands hashtag due tomorrow hashtag tag shopping hashtag note Get milk and bread")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Name != "Buy groceries" {
		t.Errorf("Name = %q, want %q", task.Name, "Buy groceries")
	}
	if task.Project != "Errands" {
		t.Errorf("Project = %q, want %q", task.Project, "Errands")
	}
	wantDue := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	if task.Due == nil || !task.Due.Equal(wantDue) {
		t.Errorf("Due = %v, want %v", task.Due, wantDue)
	}
	if !reflect.DeepEqual(task.Tags, []string{"shopping"}) {
		t.Errorf("Tags = %v, want [shopping]", task.Tags)
	}
	if task.Note != "Get milk and bread" {
		t.Errorf("Note = %q, want %q", task.Note, "Get milk and bread")
	}
}

func TestParseEndToEndDefaultVocabulary(t *testing.T) {
	// Same transcript under the stock vocabulary: "groceries" in the name is
	// not a grocery item term, so the explicitly spoken tag list survives
	// unchanged.
	e := newTestExtractor(t, command.DefaultVocabulary())

	task, err := e.Parse("Buy groceries hashtag project Errands hashtag due tomorrow hashtag tag shopping hashtag note Get milk and bread")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Name != "Buy groceries" {
		t.Errorf("Name = %q, want %q", task.Name, "Buy groceries")
	}
	if !reflect.DeepEqual(task.Tags, []string{"shopping"}) {
		t.Errorf("Tags = %v, want [shopping]", task.Tags)
	}
}

func TestParseClauses(t *testing.T) {
	e := newTestExtractor(t, plainVocabulary())

	tests := []struct {
		name       string
		transcript string
		check      func(t *testing.T, task model.Task)
	}{
		{
			name:       "Flag takes no value",
			transcript: "Call mom hashtag flag about the weekend",
			check: func(t *testing.T, task model.Task) {
				if !task.Flag {
					t.Error("Flag should be set")
				}
				if task.Name != "Call mom about the weekend" {
					t.Errorf("Name = %q, text after flag should stay in the name", task.Name)
				}
			},
		},
		{
			name:       "At prefix",
			transcript: "Review slides at project Work at due next friday",
			check: func(t *testing.T, task model.Task) {
				if task.Name != "Review slides" {
					t.Errorf("Name = %q", task.Name)
				}
				if task.Project != "Work" {
					t.Errorf("Project = %q", task.Project)
				}
				wantDue := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
				if task.Due == nil || !task.Due.Equal(wantDue) {
					t.Errorf("Due = %v, want %v", task.Due, wantDue)
				}
			},
		},
		{
			name:       "Symbol prefix",
			transcript: "Pay rent @due tomorrow @flag",
			check: func(t *testing.T, task model.Task) {
				if task.Name != "Pay rent" {
					t.Errorf("Name = %q", task.Name)
				}
				if task.Due == nil || !task.Flag {
					t.Errorf("Due/Flag missing: %+v", task)
				}
			},
		},
		{
			name:       "Defer clause",
			transcript: "Write report hashtag defer tomorrow hashtag due next friday",
			check: func(t *testing.T, task model.Task) {
				wantDefer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
				if task.Defer == nil || !task.Defer.Equal(wantDefer) {
					t.Errorf("Defer = %v, want %v", task.Defer, wantDefer)
				}
			},
		},
		{
			name:       "Tag list dedupes case-insensitively and keeps original case",
			transcript: "Plan sprint hashtag tag Work, planning, work, Planning",
			check: func(t *testing.T, task model.Task) {
				want := []string{"Work", "planning"}
				if !reflect.DeepEqual(task.Tags, want) {
					t.Errorf("Tags = %v, want %v", task.Tags, want)
				}
			},
		},
		{
			name:       "Longest note trigger wins",
			transcript: "Buy milk hashtag with note: remember the coupons",
			check: func(t *testing.T, task model.Task) {
				if task.Note != "remember the coupons" {
					t.Errorf("Note = %q", task.Note)
				}
				if task.Name != "Buy milk" {
					t.Errorf("Name = %q", task.Name)
				}
			},
		},
		{
			name:       "Add note trigger",
			transcript: "Book flights at add note: window seat preferred",
			check: func(t *testing.T, task model.Task) {
				if task.Note != "window seat preferred" {
					t.Errorf("Note = %q", task.Note)
				}
			},
		},
		{
			name:       "Bare time due resolves today when still ahead",
			transcript: "Standup prep hashtag due 3pm",
			check: func(t *testing.T, task model.Task) {
				want := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
				if task.Due == nil || !task.Due.Equal(want) {
					t.Errorf("Due = %v, want %v", task.Due, want)
				}
			},
		},
		{
			name:       "Bare time due resolves tomorrow when already past",
			transcript: "Standup prep hashtag due 9am",
			check: func(t *testing.T, task model.Task) {
				want := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
				if task.Due == nil || !task.Due.Equal(want) {
					t.Errorf("Due = %v, want %v", task.Due, want)
				}
			},
		},
		{
			name:       "Unresolvable date phrase kept in the note",
			transcript: "File taxes hashtag due whenever possible",
			check: func(t *testing.T, task model.Task) {
				if task.Due != nil {
					t.Errorf("Due should be unset, got %v", task.Due)
				}
				if task.Note != "Due (unresolved): whenever possible" {
					t.Errorf("Note = %q", task.Note)
				}
			},
		},
		{
			name:       "Name falls back to raw transcript when stripping empties it",
			transcript: "hashtag flag",
			check: func(t *testing.T, task model.Task) {
				if task.Name != "hashtag flag" {
					t.Errorf("Name = %q, want raw transcript fallback", task.Name)
				}
				if !task.Flag {
					t.Error("Flag should still be set")
				}
			},
		},
		{
			name:       "Orphaned punctuation trimmed from the name",
			transcript: "Buy milk, hashtag tag errands",
			check: func(t *testing.T, task model.Task) {
				if task.Name != "Buy milk" {
					t.Errorf("Name = %q, want %q", task.Name, "Buy milk")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := e.Parse(tt.transcript)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, task)
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	e := newTestExtractor(t, plainVocabulary())
	transcript := "Buy groceries hashtag project Errands hashtag due tomorrow hashtag tag shopping"

	first, err := e.Parse(transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.Parse(transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing twice differed:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestParseClauseRemoval(t *testing.T) {
	// Removing one clause from the transcript yields a Task missing only
	// that one field.
	e := newTestExtractor(t, plainVocabulary())

	full, err := e.Parse("Buy groceries hashtag project Errands hashtag tag shopping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withoutProject, err := e.Parse("Buy groceries hashtag tag shopping")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if withoutProject.Project != "" {
		t.Errorf("Project = %q, want empty", withoutProject.Project)
	}
	full.Project = ""
	if !reflect.DeepEqual(full, withoutProject) {
		t.Errorf("tasks differ beyond the removed clause:\nfull(-project) %+v\nwithout        %+v", full, withoutProject)
	}
}

func TestParseCustomVocabulary(t *testing.T) {
	v := command.Vocabulary{
		MarkerPrefixes: []string{"command"},
		BulletWord:     "dash",
	}
	e := newTestExtractor(t, v)

	task, err := e.Parse("Water plants command tag home command note front dash back")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Name != "Water plants" {
		t.Errorf("Name = %q", task.Name)
	}
	if !reflect.DeepEqual(task.Tags, []string{"home"}) {
		t.Errorf("Tags = %v", task.Tags)
	}
	if !reflect.DeepEqual(task.NoteItems, []string{"front", "back"}) {
		t.Errorf("NoteItems = %v", task.NoteItems)
	}

	// The default prefixes are not recognized by the custom vocabulary.
	task, err = e.Parse("Water plants hashtag flag")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Flag {
		t.Error("default prefix should not trigger with custom vocabulary")
	}
	if task.Name != "Water plants hashtag flag" {
		t.Errorf("Name = %q, unrecognized clause should stay in the name", task.Name)
	}
}
