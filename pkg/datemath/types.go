package datemath

import (
	"errors"
	"time"
)

// ErrUnresolvable is returned when a phrase cannot be resolved to a concrete time.
// Callers decide the degradation policy; the parser never guesses.
var ErrUnresolvable = errors.New("unresolvable date phrase")

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}
