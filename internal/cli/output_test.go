package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nyctennis/courtfinder/internal/parks"
	"github.com/nyctennis/courtfinder/internal/scraper"
	"github.com/nyctennis/courtfinder/internal/slot"
)

func sampleBatch() *scraper.BatchResult {
	return &scraper.BatchResult{
		Success:   true,
		Timestamp: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		Parks: []*scraper.ParkSchedule{{
			ParkID: 6,
			Name:   "Prospect Park Tennis Center",
			Days: []scraper.DaySchedule{{
				Date: "2026-09-01",
				Records: []slot.Record{
					slot.NewRecord(6, "Court 1", "2026-09-01", "6:00 a.m.",
						slot.StatusReservable, "https://www.nycgovparks.org/reserve/6"),
					slot.NewRecord(6, "Court 1", "2026-09-01", "7:00 a.m.",
						slot.StatusBooked, ""),
				},
			}},
		}},
	}
}

func TestWriteScrapeResultText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScrapeResult(&buf, sampleBatch(), FormatText); err != nil {
		t.Fatalf("WriteScrapeResult: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Scraped 1 parks") {
		t.Errorf("missing park count:\n%s", out)
	}
	if !strings.Contains(out, "Prospect Park Tennis Center") {
		t.Errorf("missing park name:\n%s", out)
	}
	if !strings.Contains(out, "2026-09-01: 2 slots, 1 reservable") {
		t.Errorf("missing day line:\n%s", out)
	}
}

func TestWriteScrapeResultJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScrapeResult(&buf, sampleBatch(), FormatJSON); err != nil {
		t.Fatalf("WriteScrapeResult: %v", err)
	}

	var decoded scraper.BatchResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.Success || len(decoded.Parks) != 1 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestWriteScrapeResultFailedBatch(t *testing.T) {
	var buf bytes.Buffer
	failed := &scraper.BatchResult{Success: false, Err: "scrape batch did not complete"}
	if err := WriteScrapeResult(&buf, failed, FormatText); err != nil {
		t.Fatalf("WriteScrapeResult: %v", err)
	}
	if !strings.Contains(buf.String(), "Scrape failed") {
		t.Errorf("missing failure line:\n%s", buf.String())
	}
}

func TestWriteAvailabilityText(t *testing.T) {
	park, _ := parks.ByID(6)
	records := []slot.Record{
		slot.NewRecord(6, "Court 1", "2026-09-01", "6:00 a.m.",
			slot.StatusReservable, "https://www.nycgovparks.org/reserve/6"),
	}

	var buf bytes.Buffer
	if err := WriteAvailability(&buf, park, "2026-09-01", records, FormatText); err != nil {
		t.Fatalf("WriteAvailability: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1 open slots") {
		t.Errorf("missing summary:\n%s", out)
	}
	if !strings.Contains(out, "6:00 a.m.") || !strings.Contains(out, "https://www.nycgovparks.org/reserve/6") {
		t.Errorf("missing slot line:\n%s", out)
	}
}

func TestWriteAvailabilityEmpty(t *testing.T) {
	park, _ := parks.ByID(6)

	var buf bytes.Buffer
	if err := WriteAvailability(&buf, park, "2026-09-01", nil, FormatText); err != nil {
		t.Fatalf("WriteAvailability: %v", err)
	}
	if !strings.Contains(buf.String(), "No open slots") {
		t.Errorf("missing empty message:\n%s", buf.String())
	}
}

func TestWriteParksJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteParks(&buf, parks.All(), FormatJSON); err != nil {
		t.Fatalf("WriteParks: %v", err)
	}
	var decoded []parks.Info
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 13 {
		t.Errorf("expected 13 parks, got %d", len(decoded))
	}
}
