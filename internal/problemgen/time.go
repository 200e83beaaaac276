package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Clock24h converts between 12-hour and 24-hour time.
//
//	Tier 1: afternoon and evening times on the hour or half hour, to 24-hour
//	Tier 2: any five minutes, either direction
//	Tier 3: any minute, with the midnight and noon hours over-sampled
type Clock24h struct{}

func (Clock24h) MaxTier() int { return 3 }

func (Clock24h) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var t TimeOfDay
	to := Clock24
	switch tier {
	case 1:
		t = NewTimeOfDay(randRange(rng, 13, 23), 30*rng.IntN(2))
	case 2:
		t = NewTimeOfDay(rng.IntN(24), 5*rng.IntN(12))
		if rng.IntN(2) == 0 {
			to = Clock12
		}
	default:
		hour := rng.IntN(24)
		if rng.IntN(2) == 0 {
			hour = pick(rng, []int{0, 12})
		}
		t = NewTimeOfDay(hour, rng.IntN(60))
		if rng.IntN(2) == 0 {
			to = Clock12
		}
	}
	return buildClockConversion(t, to), nil
}

// buildClockConversion asks to rewrite t in the target notation.
func buildClockConversion(t TimeOfDay, to ClockFormat) *Question {
	var prompt, explanation string
	if to == Clock12 {
		prompt = fmt.Sprintf("Write %s in 12-hour time. Use A.M. or P.M.", t.Format24())
		switch {
		case t.Hour() == 0:
			explanation = fmt.Sprintf("Hour 00 is 12 midnight, so %s is %s.", t.Format24(), t.Format12())
		case t.Hour() < 12:
			explanation = fmt.Sprintf("Hours before 12 are A.M., so %s is %s.", t.Format24(), t.Format12())
		case t.Hour() == 12:
			explanation = fmt.Sprintf("Hour 12 is noon, which is P.M., so %s is %s.", t.Format24(), t.Format12())
		default:
			explanation = fmt.Sprintf("Subtract 12 from hours after 12: %d − 12 = %d, so %s is %s.",
				t.Hour(), t.Hour()-12, t.Format24(), t.Format12())
		}
	} else {
		prompt = fmt.Sprintf("Write %s in 24-hour time.", t.Format12())
		switch {
		case t.Hour() == 0:
			explanation = fmt.Sprintf("12 A.M. is the start of the day, hour 00, so %s is %s.", t.Format12(), t.Format24())
		case t.Hour() < 12:
			explanation = fmt.Sprintf("A.M. hours stay the same, so %s is %s.", t.Format12(), t.Format24())
		case t.Hour() == 12:
			explanation = fmt.Sprintf("12 P.M. is noon, hour 12, so %s is %s.", t.Format12(), t.Format24())
		default:
			explanation = fmt.Sprintf("Add 12 to P.M. hours: %d + 12 = %d, so %s is %s.",
				t.Hour()-12, t.Hour(), t.Format12(), t.Format24())
		}
	}

	return &Question{
		Prompt:      prompt,
		Explanation: explanation,
		Payload:     &Clock{Value: t.Format(to), Format: to},
	}
}

// ElapsedTime asks when an event ends given its start and duration.
//
//	Tier 1: starts on the hour or half hour, lasts 15-60 minutes
//	Tier 2: starts on any five minutes, lasts up to 1 h 55 min
//	Tier 3: lasts up to 3 h 55 min and may cross noon
type ElapsedTime struct{}

func (ElapsedTime) MaxTier() int { return 3 }

var elapsedEvents = []string{"A movie", "A soccer practice", "A school play", "A bus ride", "A baking class", "A swim lesson"}

func (ElapsedTime) Generate(tier int, rng *rand.Rand) (*Question, error) {
	var start TimeOfDay
	var minutes int
	switch tier {
	case 1:
		start = NewTimeOfDay(randRange(rng, 7, 16), 30*rng.IntN(2))
		minutes = 15 * randRange(rng, 1, 4)
	case 2:
		start = NewTimeOfDay(randRange(rng, 7, 18), 5*rng.IntN(12))
		minutes = 5 * randRange(rng, 1, 23)
	default:
		start = NewTimeOfDay(randRange(rng, 8, 19), 5*rng.IntN(12))
		minutes = 5 * randRange(rng, 12, 47)
	}
	return buildElapsed(pick(rng, elapsedEvents), start, minutes), nil
}

func buildElapsed(event string, start TimeOfDay, minutes int) *Question {
	end, _ := start.Add(minutes)
	return &Question{
		Prompt: fmt.Sprintf("%s starts at %s and lasts %s. What time does it end? Use A.M. or P.M.",
			event, start.Format12(), formatDuration(minutes)),
		Explanation: fmt.Sprintf("Count on from %s: add %s to reach %s.",
			start.Format12(), formatDuration(minutes), end.Format12()),
		Payload: &Clock{Value: end.Format12(), Format: Clock12},
	}
}

// formatDuration renders minutes as "1 h 50 min", "45 min" or "2 h".
func formatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d h", h)
	default:
		return fmt.Sprintf("%d h %d min", h, m)
	}
}

// Zone is a city with a fixed standard-time offset.
type Zone struct {
	City   string
	Offset UTCOffset
}

var (
	wholeHourZones = []Zone{
		{"London", 0}, {"Paris", 60}, {"Cairo", 120}, {"Moscow", 180}, {"Dubai", 240},
		{"Karachi", 300}, {"Dhaka", 360}, {"Bangkok", 420}, {"Beijing", 480}, {"Tokyo", 540},
		{"Sydney", 600}, {"Auckland", 720}, {"Rio de Janeiro", -180}, {"New York", -300},
		{"Chicago", -360}, {"Denver", -420}, {"Los Angeles", -480}, {"Honolulu", -600},
	}
	partialHourZones = []Zone{
		{"Kolkata", 330}, {"Kathmandu", 345}, {"Adelaide", 570}, {"St. John's", -210}, {"Tehran", 210},
	}
	allZones = append(slices.Clone(wholeHourZones), partialHourZones...)
)

// DayOptions are the choices for the day blank of a time-zone question.
var DayOptions = []string{"previous day", "same day", "next day"}

// TimeZones converts a time between two cities and asks whether the day
// changes.
//
//	Tier 1: whole-hour offsets, no day change
//	Tier 2: whole-hour offsets, day change likely
//	Tier 3: at least one half- or quarter-hour offset such as +5:30 or +5:45
type TimeZones struct{}

func (TimeZones) MaxTier() int { return 3 }

func (TimeZones) Generate(tier int, rng *rand.Rand) (*Question, error) {
	for {
		var from, to Zone
		switch tier {
		case 1, 2:
			zs := pickN(rng, wholeHourZones, 2)
			from, to = zs[0], zs[1]
		default:
			from, to = pick(rng, partialHourZones), pick(rng, allZones)
			if from == to {
				continue
			}
			if rng.IntN(2) == 0 {
				from, to = to, from
			}
		}

		t := NewTimeOfDay(rng.IntN(24), 5*rng.IntN(12))
		_, days := ConvertZone(t, from.Offset, to.Offset)
		switch {
		case tier == 1 && days != 0:
			continue
		case tier == 2 && days == 0 && rng.IntN(3) != 0:
			continue
		}
		return buildTimeZone(from, to, t), nil
	}
}

func buildTimeZone(from, to Zone, t TimeOfDay) *Question {
	local, days := ConvertZone(t, from.Offset, to.Offset)
	day := DayOptions[days+1]

	diff := int(to.Offset - from.Offset)
	direction := "ahead of"
	if diff < 0 {
		direction = "behind"
	}

	return &Question{
		Prompt: fmt.Sprintf("It is %s in %s (%s). What time is it in %s (%s)? Is it the previous day, the same day or the next day there?",
			t.Format24(), from.City, from.Offset, to.City, to.Offset),
		Explanation: fmt.Sprintf("%s is %s %s %s. %s %s %s = %s on the %s.",
			to.City, formatDuration(absInt(diff)), direction, from.City,
			t.Format24(), signOf(diff), formatDuration(absInt(diff)), local.Format24(), day),
		Payload: &Blanks{Blanks: []Blank{
			{Name: "time", Label: "Time in " + to.City, Value: local.Format24(), Type: AnswerTypeTime, Format: Clock24},
			{Name: "day", Label: "Day", Value: day, Type: AnswerTypeText, Options: slices.Clone(DayOptions)},
		}},
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func signOf(n int) string {
	if n < 0 {
		return "−"
	}
	return "+"
}
