package slot

import (
	"fmt"
	"time"
)

// Status is the state of a slot at scrape time.
type Status string

const (
	StatusReservable  Status = "reservable"
	StatusBooked      Status = "booked"
	StatusUnavailable Status = "unavailable"
)

// ParseStatus validates a stored status string against the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReservable, StatusBooked, StatusUnavailable:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown slot status: %q", s)
}

// Record is one persisted availability slot. The natural key is
// (ParkID, CourtID, Date, Time); records are upserted by that key on
// every scrape and never deleted individually.
type Record struct {
	ParkID          int       `db:"park_id" json:"park_id"`
	CourtID         string    `db:"court_id" json:"court_id"`
	Date            string    `db:"date" json:"date"` // calendar date key, e.g. "2026-09-01"
	Time            string    `db:"time" json:"time"` // original 12-hour label, e.g. "6:00 a.m."
	Status          Status    `db:"status" json:"status"`
	ReservationLink string    `db:"reservation_link" json:"reservation_link,omitempty"`
	IsReservable    bool      `db:"is_reservable" json:"is_reservable"`
	LastUpdated     time.Time `db:"last_updated" json:"last_updated"`
}

// Key returns the natural key used for upsert matching.
func (r *Record) Key() string {
	return fmt.Sprintf("%d|%s|%s|%s", r.ParkID, r.CourtID, r.Date, r.Time)
}

// Validate enforces the record invariants: a reservable slot must carry a
// reservation link, and non-reservable slots must not claim reservability.
func (r *Record) Validate() error {
	if _, err := ParseStatus(string(r.Status)); err != nil {
		return err
	}
	if r.Status == StatusReservable && r.ReservationLink == "" {
		return fmt.Errorf("reservable slot %s has no reservation link", r.Key())
	}
	if r.IsReservable != (r.Status == StatusReservable) {
		return fmt.Errorf("slot %s: is_reservable does not match status %s", r.Key(), r.Status)
	}
	return nil
}

// NewRecord builds a Record with the derived IsReservable flag set.
func NewRecord(parkID int, courtID, date, timeLabel string, status Status, link string) Record {
	return Record{
		ParkID:          parkID,
		CourtID:         courtID,
		Date:            date,
		Time:            timeLabel,
		Status:          status,
		ReservationLink: link,
		IsReservable:    status == StatusReservable,
	}
}
