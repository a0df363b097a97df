package extractor

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"voice-task-automation/internal/command"
	"voice-task-automation/pkg/datemath"
)

type implExtractor struct {
	vocab    command.Vocabulary
	dates    *datemath.Parser
	now      func() time.Time
	markerRe *regexp.Regexp
	bulletRe *regexp.Regexp
}

// Option customizes the extractor.
type Option func(*implExtractor)

// WithClock overrides the reference clock used for date resolution.
func WithClock(now func() time.Time) Option {
	return func(e *implExtractor) {
		e.now = now
	}
}

// New creates a new command extractor with the given vocabulary and date parser.
func New(vocab command.Vocabulary, dates *datemath.Parser, opts ...Option) (*implExtractor, error) {
	markerRe, err := compileMarkerPattern(vocab.MarkerPrefixes)
	if err != nil {
		return nil, err
	}

	bulletWord := vocab.BulletWord
	if bulletWord == "" {
		bulletWord = "bullet"
	}
	bulletRe := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(bulletWord) + `\b`)

	e := &implExtractor{
		vocab:    vocab,
		dates:    dates,
		now:      time.Now,
		markerRe: markerRe,
		bulletRe: bulletRe,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// compileMarkerPattern builds the clause-marker regex from the configured
// prefixes. Word prefixes ("hashtag", "at") must stand alone and be followed
// by whitespace; symbol prefixes ("@") may attach directly to the keyword.
func compileMarkerPattern(prefixes []string) (*regexp.Regexp, error) {
	alts := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		quoted := regexp.QuoteMeta(strings.ToLower(p))
		if isWordPrefix(p) {
			alts = append(alts, `\b`+quoted+`\s+`)
		} else {
			alts = append(alts, quoted+`\s*`)
		}
	}
	if len(alts) == 0 {
		return nil, fmt.Errorf("vocabulary has no marker prefixes")
	}

	// Multi-word note triggers come first so the longest match wins when
	// several could apply at the same position.
	keywords := `(with\s+note|add\s+note|project|defer|due|flag|tags|tag|note)`

	pattern := `(?i)(?:` + strings.Join(alts, "|") + `)` + keywords + `\b:?\s*`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile marker pattern: %w", err)
	}
	return re, nil
}

func isWordPrefix(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// canonicalKeyword normalizes a matched keyword to its canonical attribute name.
func canonicalKeyword(raw string) string {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	switch key {
	case "with note", "add note":
		return "note"
	case "tags":
		return "tag"
	}
	return key
}
