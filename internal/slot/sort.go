package slot

import (
	"sort"
	"strconv"
	"strings"
)

// SortRecords orders slots for presentation: court ascending, then a.m.
// before p.m., then the 12 o'clock hour first within its period followed
// by ascending hours. This mirrors the ORDER BY used by the availability
// query so snapshot and store results line up.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.CourtID != b.CourtID {
			return a.CourtID < b.CourtID
		}
		pa, pb := periodRank(a.Time), periodRank(b.Time)
		if pa != pb {
			return pa < pb
		}
		return hourRank(a.Time) < hourRank(b.Time)
	})
}

// periodRank puts a.m. labels before p.m. labels; anything else sorts last.
func periodRank(label string) int {
	l := strings.ToLower(label)
	switch {
	case strings.HasSuffix(l, "a.m."):
		return 0
	case strings.HasSuffix(l, "p.m."):
		return 1
	default:
		return 2
	}
}

// hourRank ranks the 12 o'clock hour first within its period, then the
// leading hour digits ascending.
func hourRank(label string) int {
	if strings.HasPrefix(label, "12:") {
		return 0
	}
	digits := label
	for i, r := range label {
		if r < '0' || r > '9' {
			digits = label[:i]
			break
		}
	}
	h, err := strconv.Atoi(digits)
	if err != nil {
		return 99
	}
	return h
}
