package slot

// Summary counts slots per time-of-day bucket for display alongside a
// park's listing.
type Summary struct {
	Total     int `json:"total"`
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
}

// Summarize buckets a set of 12-hour slot labels. Labels that fail to
// parse are excluded from every count; callers keep the raw label for
// display regardless.
func Summarize(labels []string) Summary {
	var s Summary
	for _, label := range labels {
		t, err := ParseClockTime(label)
		if err != nil {
			continue
		}
		switch BucketOf(t) {
		case BucketMorning:
			s.Morning++
		case BucketAfternoon:
			s.Afternoon++
		case BucketEvening:
			s.Evening++
		}
		s.Total++
	}
	return s
}
