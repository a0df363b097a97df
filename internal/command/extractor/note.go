package extractor

import (
	"strings"
	"unicode"
)

// structureNote splits a note clause on the bullet separator word and returns
// the display string plus the individual items. A note without any bullet
// word is returned verbatim with no items. Dangling bullet words from
// imprecise transcription produce no empty items.
func (e *implExtractor) structureNote(text string) (string, []string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	segments := e.bulletRe.Split(text, -1)
	if len(segments) == 1 {
		return text, nil
	}

	var items []string
	for _, seg := range segments {
		seg = trimSegment(seg)
		if seg != "" {
			items = append(items, seg)
		}
	}
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String(), items
}

// trimSegment strips leading/trailing whitespace and punctuation from a
// bullet segment.
func trimSegment(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}
