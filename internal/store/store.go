package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "embed"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/nyctennis/courtfinder/internal/logger"
	"github.com/nyctennis/courtfinder/internal/parks"
	"github.com/nyctennis/courtfinder/internal/slot"
)

//go:embed schema.sql
var schemaSQL string

// ErrNoData means the store has never been written: the caller should
// run a fresh scrape rather than treat this as a generic failure.
var ErrNoData = errors.New("no prior availability data; run a fresh scrape")

// Store wraps the Postgres connection for availability reads and writes.
type Store struct {
	db         *sqlx.DB
	purgeStale bool
}

// Open connects to Postgres and configures the connection pool.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// New creates a Store. purgeStale selects the reconciliation policy:
// when true, rows for each (park, date) pair in a fresh batch are
// deleted before the batch is written; when false, superseded slots
// absent from the batch are retained as history.
func New(db *sqlx.DB, purgeStale bool) *Store {
	return &Store{db: db, purgeStale: purgeStale}
}

// InitSchema applies the idempotent schema DDL.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// availabilityRow is the scan target; reservation_link is nullable in
// the table.
type availabilityRow struct {
	ParkID          int            `db:"park_id"`
	CourtID         string         `db:"court_id"`
	Date            string         `db:"date"`
	Time            string         `db:"time"`
	Status          string         `db:"status"`
	ReservationLink sql.NullString `db:"reservation_link"`
	IsReservable    bool           `db:"is_reservable"`
	LastUpdated     time.Time      `db:"last_updated"`
}

func (r *availabilityRow) record() (slot.Record, error) {
	status, err := slot.ParseStatus(r.Status)
	if err != nil {
		return slot.Record{}, fmt.Errorf("row %d/%s/%s/%s: %w", r.ParkID, r.CourtID, r.Date, r.Time, err)
	}
	return slot.Record{
		ParkID:          r.ParkID,
		CourtID:         r.CourtID,
		Date:            r.Date,
		Time:            r.Time,
		Status:          status,
		ReservationLink: r.ReservationLink.String,
		IsReservable:    r.IsReservable,
		LastUpdated:     r.LastUpdated,
	}, nil
}

const upsertSQL = `
	INSERT INTO court_availability
		(park_id, court_id, date, "time", status, reservation_link, is_reservable, last_updated)
	VALUES
		($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (park_id, court_id, date, "time") DO UPDATE SET
		status = EXCLUDED.status,
		reservation_link = EXCLUDED.reservation_link,
		is_reservable = EXCLUDED.is_reservable,
		last_updated = EXCLUDED.last_updated`

// UpsertBatch writes one park's freshly scraped records inside a single
// transaction, keyed by the natural key, stamping each row with the
// scrape time. Records failing validation are skipped with a warning
// rather than aborting the batch.
func (s *Store) UpsertBatch(ctx context.Context, parkID int, records []slot.Record, scrapedAt time.Time) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	if s.purgeStale {
		dates := make(map[string]bool)
		for _, rec := range records {
			dates[rec.Date] = true
		}
		for date := range dates {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM court_availability WHERE park_id = $1 AND date = $2`,
				parkID, date); err != nil {
				return fmt.Errorf("purging stale slots for park %d date %s: %w", parkID, date, err)
			}
		}
	}

	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			logger.Warn("skipping invalid record", logger.Fields{"key": rec.Key()})
			continue
		}
		link := sql.NullString{String: rec.ReservationLink, Valid: rec.ReservationLink != ""}
		if _, err := tx.ExecContext(ctx, upsertSQL,
			parkID, rec.CourtID, rec.Date, rec.Time,
			string(rec.Status), link, rec.IsReservable, scrapedAt); err != nil {
			return fmt.Errorf("upserting slot %s: %w", rec.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch for park %d: %w", parkID, err)
	}
	return nil
}

const availabilitySQL = `
	SELECT
		park_id,
		court_id,
		to_char(date, 'YYYY-MM-DD') AS date,
		"time",
		status,
		reservation_link,
		is_reservable,
		last_updated
	FROM court_availability
	WHERE park_id = $1
	  AND date = $2
	  AND is_reservable
	  AND reservation_link IS NOT NULL
	ORDER BY
		court_id,
		CASE
			WHEN "time" LIKE '%a.m.' THEN 0
			WHEN "time" LIKE '%p.m.' THEN 1
			ELSE 2
		END,
		CASE
			WHEN "time" LIKE '12:%' THEN 0
			ELSE CAST(substring("time" from '^[0-9]+') AS INTEGER)
		END`

// GetAvailability returns the reservable, linked slots for one park and
// date in presentation order. An empty result is not an error; a store
// that has never been written returns ErrNoData.
func (s *Store) GetAvailability(ctx context.Context, parkID int, date string) ([]slot.Record, error) {
	var rows []availabilityRow
	if err := s.db.SelectContext(ctx, &rows, availabilitySQL, parkID, date); err != nil {
		return nil, fmt.Errorf("querying availability: %w", err)
	}

	if len(rows) == 0 {
		var any bool
		if err := s.db.GetContext(ctx, &any,
			`SELECT EXISTS (SELECT 1 FROM court_availability)`); err != nil {
			return nil, fmt.Errorf("checking for prior data: %w", err)
		}
		if !any {
			return nil, ErrNoData
		}
		return []slot.Record{}, nil
	}

	records := make([]slot.Record, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// LatestUpdate returns the most recent scrape timestamp for freshness
// display, or ErrNoData when nothing has been written.
func (s *Store) LatestUpdate(ctx context.Context) (time.Time, error) {
	var ts sql.NullTime
	if err := s.db.GetContext(ctx, &ts,
		`SELECT max(last_updated) FROM court_availability`); err != nil {
		return time.Time{}, fmt.Errorf("querying latest update: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, ErrNoData
	}
	return ts.Time, nil
}

const seedParkSQL = `
	INSERT INTO tennis_parks
		(park_id, park_name, address, lat, lon, num_courts, phone, website)
	VALUES
		(:park_id, :park_name, :address, :lat, :lon, :num_courts, :phone, :website)
	ON CONFLICT (park_id) DO UPDATE SET
		park_name = EXCLUDED.park_name,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		num_courts = EXCLUDED.num_courts,
		phone = EXCLUDED.phone,
		website = EXCLUDED.website`

// SeedParks writes the static park reference data.
func (s *Store) SeedParks(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range parks.All() {
		if _, err := tx.NamedExecContext(ctx, seedParkSQL, p); err != nil {
			return fmt.Errorf("seeding park %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Parks reads the reference table, substituting default coordinates for
// rows with invalid values so the map never renders a bad point.
func (s *Store) Parks(ctx context.Context) ([]parks.Info, error) {
	var out []parks.Info
	err := s.db.SelectContext(ctx, &out, `
		SELECT
			park_id,
			park_name,
			address,
			COALESCE(lat, 0) AS lat,
			COALESCE(lon, 0) AS lon,
			num_courts,
			COALESCE(phone, '') AS phone,
			COALESCE(website, '') AS website
		FROM tennis_parks
		ORDER BY park_name`)
	if err != nil {
		return nil, fmt.Errorf("querying parks: %w", err)
	}
	for i := range out {
		if out[i].Lat == 0 && out[i].Lon == 0 {
			out[i].Lat = parks.DefaultLat
			out[i].Lon = parks.DefaultLon
		}
	}
	return out, nil
}
