package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/nyctennis/courtfinder/internal/slot"
)

func TestAvailabilityRowRecord(t *testing.T) {
	now := time.Now()

	row := availabilityRow{
		ParkID:          6,
		CourtID:         "Court 1",
		Date:            "2026-09-01",
		Time:            "6:00 a.m.",
		Status:          "reservable",
		ReservationLink: sql.NullString{String: "https://www.nycgovparks.org/reserve/6", Valid: true},
		IsReservable:    true,
		LastUpdated:     now,
	}

	rec, err := row.record()
	if err != nil {
		t.Fatalf("record() failed: %v", err)
	}
	if rec.Status != slot.StatusReservable {
		t.Errorf("status = %s", rec.Status)
	}
	if rec.ReservationLink != "https://www.nycgovparks.org/reserve/6" {
		t.Errorf("link = %q", rec.ReservationLink)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("converted record fails validation: %v", err)
	}
}

func TestAvailabilityRowRecordNullLink(t *testing.T) {
	row := availabilityRow{
		ParkID: 6, CourtID: "Court 1", Date: "2026-09-01", Time: "7:00 a.m.",
		Status: "booked",
	}
	rec, err := row.record()
	if err != nil {
		t.Fatalf("record() failed: %v", err)
	}
	if rec.ReservationLink != "" {
		t.Errorf("NULL link should map to empty string, got %q", rec.ReservationLink)
	}
}

func TestAvailabilityRowRecordRejectsUnknownStatus(t *testing.T) {
	row := availabilityRow{
		ParkID: 6, CourtID: "Court 1", Date: "2026-09-01", Time: "7:00 a.m.",
		Status: "Reserve this time",
	}
	if _, err := row.record(); err == nil {
		t.Error("expected error for status outside the closed set")
	}
}
