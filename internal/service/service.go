package service

import (
	"context"
	"errors"
	"time"

	"github.com/nyctennis/courtfinder/internal/logger"
	"github.com/nyctennis/courtfinder/internal/scraper"
	"github.com/nyctennis/courtfinder/internal/slot"
	"github.com/nyctennis/courtfinder/internal/snapshot"
)

// ErrNoSnapshot means no scrape has completed in this process yet.
var ErrNoSnapshot = errors.New("no snapshot available; run a fresh scrape")

// BatchScraper runs the fan-out scrape across all parks.
type BatchScraper interface {
	ScrapeAll(ctx context.Context, workers int) *scraper.BatchResult
}

// AvailabilityStore is the persistence surface the service needs.
type AvailabilityStore interface {
	UpsertBatch(ctx context.Context, parkID int, records []slot.Record, scrapedAt time.Time) error
	GetAvailability(ctx context.Context, parkID int, date string) ([]slot.Record, error)
	LatestUpdate(ctx context.Context) (time.Time, error)
}

// Service wires the scrape pipeline to the store and snapshot cache.
type Service struct {
	scraper BatchScraper
	store   AvailabilityStore
	cache   *snapshot.Cache

	workers       int
	scrapeTimeout time.Duration
}

// New creates a Service. The cache must be the process-wide instance
// owned by the composition root.
func New(sc BatchScraper, st AvailabilityStore, cache *snapshot.Cache, workers int, scrapeTimeout time.Duration) *Service {
	return &Service{
		scraper:       sc,
		store:         st,
		cache:         cache,
		workers:       workers,
		scrapeTimeout: scrapeTimeout,
	}
}

// RunFullScrape scrapes every park, reconciles the results into the
// store (one transaction per park), and replaces the in-memory
// snapshot. A failed batch commits nothing: no store writes survive it
// and the previous snapshot stays in place.
func (s *Service) RunFullScrape(ctx context.Context) *scraper.BatchResult {
	ctx, cancel := context.WithTimeout(ctx, s.scrapeTimeout)
	defer cancel()

	result := s.scraper.ScrapeAll(ctx, s.workers)
	if !result.Success {
		return result
	}

	for _, park := range result.Parks {
		if err := s.store.UpsertBatch(ctx, park.ParkID, park.Records(), result.Timestamp); err != nil {
			// One park's write failure doesn't invalidate the rest of
			// the batch; its previous rows simply stay current.
			logger.Error("persisting park batch failed", logger.Fields{
				"park_id": park.ParkID,
				"park":    park.Name,
			}, err)
			logger.IncrCounter("store.batch_failures")
		}
	}

	s.cache.Set(result.Parks)
	return result
}

// GetAvailability answers "what are the open slots for this park and
// date": reservable, linked slots in presentation order. store.ErrNoData
// passes through so callers can prompt for a fresh scrape.
func (s *Service) GetAvailability(ctx context.Context, parkID int, date string) ([]slot.Record, error) {
	return s.store.GetAvailability(ctx, parkID, date)
}

// Snapshot returns the most recent in-memory scrape result without
// touching the network or the store.
func (s *Service) Snapshot() ([]*scraper.ParkSchedule, time.Time, error) {
	parks, capturedAt, ok := s.cache.Get()
	if !ok {
		return nil, time.Time{}, ErrNoSnapshot
	}
	return parks, capturedAt, nil
}

// Freshness reports when the store was last written.
func (s *Service) Freshness(ctx context.Context) (time.Time, error) {
	return s.store.LatestUpdate(ctx)
}

// Summarize buckets a park day's slots for display.
func Summarize(records []slot.Record) slot.Summary {
	labels := make([]string, len(records))
	for i, rec := range records {
		labels[i] = rec.Time
	}
	return slot.Summarize(labels)
}
