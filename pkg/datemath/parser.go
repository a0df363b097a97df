package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parser converts spoken date/time phrases to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/London"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

var (
	inDurationRe = regexp.MustCompile(`^in (\d+) (minute|minutes|hour|hours|day|days|week|weeks|month|months)$`)
	clockRe      = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
)

// Parse converts a spoken phrase to an absolute time relative to baseTime
// (usually time.Now()). Phrases it cannot resolve fail with ErrUnresolvable;
// it never falls back to a guessed date.
//
// Supported phrase classes:
//   - "today", "tomorrow", "tonight"
//   - "next friday", "friday" (nearest future occurrence, never the past)
//   - "in 2 hours", "in 3 days", "in 1 week"
//   - "3pm", "2:30pm", "15:00" (today if still ahead, else tomorrow)
//   - "<day phrase> at <clock time>", e.g. "next friday at 2:30pm"
func (p *Parser) Parse(phrase string, baseTime time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(phrase))
	s = strings.TrimPrefix(s, "on ")
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty phrase", ErrUnresolvable)
	}

	baseTime = baseTime.In(p.location)

	// "in X minutes/hours/days/..." offsets from the current moment.
	if strings.HasPrefix(s, "in ") {
		return p.parseInDuration(s, baseTime)
	}

	// "<day> at <time>" combos.
	if day, clock, found := strings.Cut(s, " at "); found {
		dayStart, err := p.parseDay(strings.TrimSpace(day), baseTime)
		if err != nil {
			return time.Time{}, err
		}
		hour, minute, err := parseClock(strings.TrimSpace(clock))
		if err != nil {
			return time.Time{}, err
		}
		return dayStart.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
	}

	// Bare clock time: today if the moment has not passed, else tomorrow.
	if hour, minute, err := parseClock(s); err == nil {
		candidate := p.startOfDay(baseTime).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		if !candidate.After(baseTime) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate, nil
	}

	return p.parseDay(s, baseTime)
}

// parseDay resolves day-granularity phrases to start of day, except "tonight"
// which carries its own evening time.
func (p *Parser) parseDay(s string, baseTime time.Time) (time.Time, error) {
	switch s {
	case "today":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "tonight":
		return p.startOfDay(baseTime).Add(20 * time.Hour), nil
	}

	dayName := strings.TrimPrefix(s, "next ")
	if targetWeekday, ok := weekdays[dayName]; ok {
		daysUntil := int(targetWeekday - baseTime.Weekday())
		if daysUntil <= 0 {
			daysUntil += 7
		}
		return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnresolvable, s)
}

// parseInDuration handles patterns like "in 30 minutes", "in 2 hours", "in 3 days".
// Minute and hour offsets keep the clock; day and larger resolve to start of day.
func (p *Parser) parseInDuration(s string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(s)
	if len(matches) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnresolvable, s)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "minute"):
		return baseTime.Add(time.Duration(amount) * time.Minute), nil
	case strings.HasPrefix(unit, "hour"):
		return baseTime.Add(time.Duration(amount) * time.Hour), nil
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}

	return time.Time{}, fmt.Errorf("%w: unknown unit %q", ErrUnresolvable, unit)
}

// parseClock parses "3pm", "2:30pm", "15:00" into hour and minute.
func parseClock(s string) (int, int, error) {
	matches := clockRe.FindStringSubmatch(s)
	if matches == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnresolvable, s)
	}

	hour, _ := strconv.Atoi(matches[1])
	minute := 0
	if matches[2] != "" {
		minute, _ = strconv.Atoi(matches[2])
	}
	meridiem := matches[3]

	// A bare "3" with no colon and no am/pm is too ambiguous to resolve.
	if matches[2] == "" && meridiem == "" {
		return 0, 0, fmt.Errorf("%w: bare hour %q", ErrUnresolvable, s)
	}

	switch meridiem {
	case "pm":
		if hour > 12 {
			return 0, 0, fmt.Errorf("%w: %q", ErrUnresolvable, s)
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour > 12 {
			return 0, 0, fmt.Errorf("%w: %q", ErrUnresolvable, s)
		}
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnresolvable, s)
	}

	return hour, minute, nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}
