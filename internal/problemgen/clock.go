package problemgen

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a day in minutes.
const MinutesPerDay = 24 * 60

// TimeOfDay is a wall-clock time as minutes since midnight, in [0, 1440).
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from a 24-hour hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// Hour returns the 24-hour hour.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute within the hour.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Format24 renders the time as zero-padded 24-hour notation, e.g. "09:05".
func (t TimeOfDay) Format24() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Format12 renders the time as 12-hour notation, e.g. "11:50 P.M.".
func (t TimeOfDay) Format12() string {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	suffix := "A.M."
	if t.Hour() >= 12 {
		suffix = "P.M."
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute(), suffix)
}

// Format renders the time in the given notation.
func (t TimeOfDay) Format(f ClockFormat) string {
	if f == Clock12 {
		return t.Format12()
	}
	return t.Format24()
}

// Add moves the time by delta minutes and reports how many days the result
// rolled over: +1 for the next day, -1 for the previous day.
func (t TimeOfDay) Add(delta int) (TimeOfDay, int) {
	total := int(t) + delta
	days := floorDiv(total, MinutesPerDay)
	return TimeOfDay(total - days*MinutesPerDay), days
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ParseTimeOfDay parses "15:45", "9:05", "3:45 P.M.", "3:45pm" or "12:00 a.m".
// The second result reports whether an A.M./P.M. marker was present.
func ParseTimeOfDay(s string) (TimeOfDay, bool, error) {
	norm := strings.ToLower(s)
	norm = strings.NewReplacer(".", "", " ", "").Replace(norm)

	meridiem := ""
	switch {
	case strings.HasSuffix(norm, "am"):
		meridiem = "am"
	case strings.HasSuffix(norm, "pm"):
		meridiem = "pm"
	}
	norm = strings.TrimSuffix(norm, meridiem)

	hh, mm, ok := strings.Cut(norm, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 || !isDigits(hh) || !isDigits(mm) {
		return 0, false, fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false, fmt.Errorf("invalid minute in %q", s)
	}

	if meridiem == "" {
		if hour < 0 || hour > 23 {
			return 0, false, fmt.Errorf("invalid hour in %q", s)
		}
		return NewTimeOfDay(hour, minute), false, nil
	}

	if hour < 1 || hour > 12 {
		return 0, true, fmt.Errorf("invalid 12-hour time %q", s)
	}
	hour %= 12
	if meridiem == "pm" {
		hour += 12
	}
	return NewTimeOfDay(hour, minute), true, nil
}

// matchClock reports whether got is the same time as want, written in the
// expected notation: 12-hour answers need a marker, 24-hour answers must not
// have one.
func matchClock(got, want string, f ClockFormat) bool {
	g, gm, err := ParseTimeOfDay(got)
	if err != nil {
		return false
	}
	w, _, err := ParseTimeOfDay(want)
	if err != nil {
		return false
	}
	return g == w && gm == (f == Clock12)
}

// UTCOffset is a time-zone offset from UTC in minutes.
type UTCOffset int

// String renders the offset as "UTC+5:30", "UTC-3:30" or "UTC+0".
func (o UTCOffset) String() string {
	if o == 0 {
		return "UTC+0"
	}
	sign := "+"
	m := int(o)
	if m < 0 {
		sign = "-"
		m = -m
	}
	if m%60 == 0 {
		return fmt.Sprintf("UTC%s%d", sign, m/60)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, m/60, m%60)
}

// ConvertZone converts a wall-clock time between two UTC offsets and reports
// the day rollover.
func ConvertZone(t TimeOfDay, from, to UTCOffset) (TimeOfDay, int) {
	return t.Add(int(to) - int(from))
}
