package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nyctennis/courtfinder/internal/scraper"
	"github.com/nyctennis/courtfinder/internal/slot"
	"github.com/nyctennis/courtfinder/internal/snapshot"
	"github.com/nyctennis/courtfinder/internal/store"
)

type fakeScraper struct {
	result *scraper.BatchResult
}

func (f *fakeScraper) ScrapeAll(ctx context.Context, workers int) *scraper.BatchResult {
	return f.result
}

type fakeStore struct {
	upserts   map[int][]slot.Record
	upsertErr error
	records   []slot.Record
	queryErr  error
	latest    time.Time
	latestErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{upserts: make(map[int][]slot.Record)}
}

func (f *fakeStore) UpsertBatch(ctx context.Context, parkID int, records []slot.Record, scrapedAt time.Time) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts[parkID] = records
	return nil
}

func (f *fakeStore) GetAvailability(ctx context.Context, parkID int, date string) ([]slot.Record, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.records, nil
}

func (f *fakeStore) LatestUpdate(ctx context.Context) (time.Time, error) {
	return f.latest, f.latestErr
}

func successfulBatch() *scraper.BatchResult {
	return &scraper.BatchResult{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Parks: []*scraper.ParkSchedule{
			{
				ParkID: 6,
				Name:   "Prospect Park Tennis Center",
				Days: []scraper.DaySchedule{{
					Date: "2026-09-01",
					Records: []slot.Record{
						slot.NewRecord(6, "Court 1", "2026-09-01", "6:00 a.m.",
							slot.StatusReservable, "https://www.nycgovparks.org/reserve/6"),
					},
				}},
			},
		},
	}
}

func TestRunFullScrapeCommitsStoreAndSnapshot(t *testing.T) {
	st := newFakeStore()
	cache := snapshot.New()
	svc := New(&fakeScraper{result: successfulBatch()}, st, cache, 4, time.Minute)

	result := svc.RunFullScrape(context.Background())

	if !result.Success {
		t.Fatalf("expected success, got %s", result.Err)
	}
	if len(st.upserts[6]) != 1 {
		t.Errorf("expected park 6 records upserted, got %v", st.upserts)
	}

	parks, _, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("snapshot should be set after successful scrape: %v", err)
	}
	if len(parks) != 1 || parks[0].ParkID != 6 {
		t.Errorf("unexpected snapshot contents: %v", parks)
	}
}

func TestRunFullScrapeFailedBatchCommitsNothing(t *testing.T) {
	st := newFakeStore()
	cache := snapshot.New()
	failed := &scraper.BatchResult{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Err:       "scrape batch did not complete: context deadline exceeded",
	}
	svc := New(&fakeScraper{result: failed}, st, cache, 4, time.Minute)

	result := svc.RunFullScrape(context.Background())

	if result.Success {
		t.Fatal("expected failed batch")
	}
	if len(st.upserts) != 0 {
		t.Errorf("failed batch must not write to the store, got %v", st.upserts)
	}
	if _, _, err := svc.Snapshot(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("failed batch must not commit a snapshot, got %v", err)
	}
}

func TestRunFullScrapeStoreFailureIsIsolated(t *testing.T) {
	st := newFakeStore()
	st.upsertErr = errors.New("connection reset")
	cache := snapshot.New()
	svc := New(&fakeScraper{result: successfulBatch()}, st, cache, 4, time.Minute)

	result := svc.RunFullScrape(context.Background())

	// Persistence trouble doesn't fail the scrape itself; the snapshot
	// still serves the fresh data.
	if !result.Success {
		t.Fatalf("expected success despite store failure, got %s", result.Err)
	}
	if _, _, err := svc.Snapshot(); err != nil {
		t.Errorf("snapshot should still be set: %v", err)
	}
}

func TestGetAvailabilityPassesThroughNoData(t *testing.T) {
	st := newFakeStore()
	st.queryErr = store.ErrNoData
	svc := New(&fakeScraper{}, st, snapshot.New(), 4, time.Minute)

	_, err := svc.GetAvailability(context.Background(), 6, "2026-09-01")
	if !errors.Is(err, store.ErrNoData) {
		t.Errorf("expected ErrNoData passthrough, got %v", err)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	svc := New(&fakeScraper{}, newFakeStore(), snapshot.New(), 4, time.Minute)

	if _, _, err := svc.Snapshot(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestFreshness(t *testing.T) {
	st := newFakeStore()
	st.latest = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc := New(&fakeScraper{}, st, snapshot.New(), 4, time.Minute)

	got, err := svc.Freshness(context.Background())
	if err != nil {
		t.Fatalf("Freshness: %v", err)
	}
	if !got.Equal(st.latest) {
		t.Errorf("freshness = %v, want %v", got, st.latest)
	}
}

func TestSummarize(t *testing.T) {
	records := []slot.Record{
		slot.NewRecord(6, "Court 1", "2026-09-01", "9:00 a.m.", slot.StatusReservable, "https://x/1"),
		slot.NewRecord(6, "Court 1", "2026-09-01", "2:30 p.m.", slot.StatusReservable, "https://x/2"),
		slot.NewRecord(6, "Court 1", "2026-09-01", "6:00 p.m.", slot.StatusReservable, "https://x/3"),
	}
	want := slot.Summary{Total: 3, Morning: 1, Afternoon: 1, Evening: 1}
	if got := Summarize(records); got != want {
		t.Errorf("Summarize = %+v, want %+v", got, want)
	}
}
