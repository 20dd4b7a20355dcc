package slot

import "testing"

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		label      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{"6:00 a.m.", 6, 0, false},
		{"11:30 a.m.", 11, 30, false},
		{"12:00 p.m.", 12, 0, false},
		{"12:00 a.m.", 0, 0, false},
		{"4:30 p.m.", 16, 30, false},
		{"5:00 p.m.", 17, 0, false},
		{"7:30 p.m.", 19, 30, false},
		{"11:00 p.m.", 23, 0, false},
		{"6:00 A.M.", 6, 0, false}, // case-insensitive
		{"  6:00 a.m.  ", 6, 0, false},
		{"6:00", 0, 0, true},       // missing period marker
		{"6:00 am", 0, 0, true},    // wrong period token
		{"noon p.m.", 0, 0, true},  // not a clock reading
		{"13:00 p.m.", 0, 0, true}, // hour out of 12-hour range
		{"0:30 a.m.", 0, 0, true},
		{"6:61 a.m.", 0, 0, true},
		{"Not Available", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseClockTime(tt.label)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClockTime(%q) expected error, got %+v", tt.label, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClockTime(%q) unexpected error: %v", tt.label, err)
			}
			if got.Hour != tt.wantHour || got.Minute != tt.wantMinute {
				t.Errorf("ParseClockTime(%q) = %d:%02d, want %d:%02d",
					tt.label, got.Hour, got.Minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestBucketOf(t *testing.T) {
	tests := []struct {
		label string
		want  Bucket
	}{
		{"6:00 a.m.", BucketMorning},
		{"11:30 a.m.", BucketMorning},
		{"12:00 a.m.", BucketMorning}, // midnight is hour 0
		{"12:00 p.m.", BucketAfternoon},
		{"4:30 p.m.", BucketAfternoon},
		{"4:59 p.m.", BucketAfternoon},
		{"5:00 p.m.", BucketEvening},
		{"7:30 p.m.", BucketEvening},
		{"11:00 p.m.", BucketEvening},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			ct, err := ParseClockTime(tt.label)
			if err != nil {
				t.Fatalf("ParseClockTime(%q) failed: %v", tt.label, err)
			}
			if got := BucketOf(ct); got != tt.want {
				t.Errorf("BucketOf(%q) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}
