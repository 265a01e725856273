package engine

import (
	"fmt"
	"time"
)

// kickoffLayout is the organizer-facing wall-clock format, deliberately
// without a zone offset.
const kickoffLayout = "2006-01-02T15:04"

// LocalClock is an organizer-entered wall-clock kickoff: the raw components
// with no embedded offset.
type LocalClock struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Day    int        `json:"day"`
	Hour   int        `json:"hour"`
	Minute int        `json:"minute"`
}

// ReferenceZone is the fixed offset the campaign's wall-clock components are
// mapped onto. Using a fixed zone instead of the process-local one keeps
// stored instants independent of wherever the server happens to run.
func ReferenceZone(offsetMinutes int) *time.Location {
	if offsetMinutes == 0 {
		return time.UTC
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetMinutes/60), offsetMinutes*60)
}

// ToInstant maps wall-clock components verbatim onto the reference zone and
// returns the absolute instant for storage.
func ToInstant(c LocalClock, ref *time.Location) time.Time {
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, 0, 0, ref).UTC()
}

// FromInstant is the inverse of ToInstant: it extracts the same components
// back out of a stored instant, so what the organizer entered is what every
// viewer sees, regardless of server or viewer timezone.
func FromInstant(t time.Time, ref *time.Location) LocalClock {
	local := t.In(ref)
	return LocalClock{
		Year:   local.Year(),
		Month:  local.Month(),
		Day:    local.Day(),
		Hour:   local.Hour(),
		Minute: local.Minute(),
	}
}

// ParseLocalClock parses organizer input like "2026-03-27T10:00".
func ParseLocalClock(s string) (LocalClock, error) {
	t, err := time.Parse(kickoffLayout, s)
	if err != nil {
		return LocalClock{}, fmt.Errorf("invalid kickoff time %q, expected YYYY-MM-DDTHH:MM: %w", s, err)
	}
	return LocalClock{Year: t.Year(), Month: t.Month(), Day: t.Day(), Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c LocalClock) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", c.Year, int(c.Month), c.Day, c.Hour, c.Minute)
}
