package extractor

import (
	"strings"

	"voice-task-automation/internal/model"
)

// applyGroceryTag appends the configured shopping-context tag when the task
// name or any note item mentions a known grocery term. It runs after primary
// parsing and never removes or reorders explicitly stated tags.
func (e *implExtractor) applyGroceryTag(t *model.Task) {
	if e.vocab.GroceryTag == "" || len(e.vocab.GroceryTerms) == 0 {
		return
	}
	if containsFold(t.Tags, e.vocab.GroceryTag) {
		return
	}

	if e.mentionsGrocery(t.Name) {
		t.Tags = append(t.Tags, e.vocab.GroceryTag)
		return
	}
	for _, item := range t.NoteItems {
		if e.mentionsGrocery(item) {
			t.Tags = append(t.Tags, e.vocab.GroceryTag)
			return
		}
	}
}

// mentionsGrocery reports whether text contains any grocery term as a whole
// word. Punctuation is treated as a word break so "milk," still matches.
func (e *implExtractor) mentionsGrocery(text string) bool {
	normalized := " " + normalizeWords(text) + " "
	for _, term := range e.vocab.GroceryTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if strings.Contains(normalized, " "+term+" ") {
			return true
		}
	}
	return false
}

func normalizeWords(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}
