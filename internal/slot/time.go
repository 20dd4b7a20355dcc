package slot

import (
	"fmt"
	"strconv"
	"strings"
)

// Bucket is a coarse time-of-day classification.
type Bucket string

const (
	BucketMorning   Bucket = "morning"   // [00:00, 12:00)
	BucketAfternoon Bucket = "afternoon" // [12:00, 17:00)
	BucketEvening   Bucket = "evening"   // [17:00, 24:00)
)

// ClockTime is a validated 24-hour time of day parsed from a slot label.
type ClockTime struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// ParseClockTime converts a 12-hour label like "6:00 a.m." or "2:30 p.m."
// into a 24-hour ClockTime. The label must be exactly two space-separated
// tokens: a clock reading and a period marker. Hour 12 maps to 0 for a.m.
// and stays 12 for p.m.
func ParseClockTime(label string) (ClockTime, error) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(label)))
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("malformed time label: %q", label)
	}

	clock, period := parts[0], parts[1]
	if period != "a.m." && period != "p.m." {
		return ClockTime{}, fmt.Errorf("malformed period marker in %q", label)
	}

	hm := strings.SplitN(clock, ":", 2)
	if len(hm) != 2 {
		return ClockTime{}, fmt.Errorf("malformed clock reading in %q", label)
	}

	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return ClockTime{}, fmt.Errorf("invalid hour in %q", label)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid minute in %q", label)
	}

	if period == "p.m." && hour != 12 {
		hour += 12
	} else if period == "a.m." && hour == 12 {
		hour = 0
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

// BucketOf classifies a clock time into morning, afternoon, or evening.
func BucketOf(t ClockTime) Bucket {
	switch {
	case t.Hour < 12:
		return BucketMorning
	case t.Hour < 17:
		return BucketAfternoon
	default:
		return BucketEvening
	}
}
