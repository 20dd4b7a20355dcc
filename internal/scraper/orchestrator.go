package scraper

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nyctennis/courtfinder/internal/logger"
	"github.com/nyctennis/courtfinder/internal/parks"
)

// BatchResult is the outcome of one full scrape across all parks.
// Success=true with a short park list means some parks were absent or
// failed individually; Success=false means the batch itself did not
// complete (timeout or setup failure) and nothing should be committed.
type BatchResult struct {
	Success   bool            `json:"success"`
	Parks     []*ParkSchedule `json:"parks"`
	Timestamp time.Time       `json:"timestamp"`
	Err       string          `json:"error,omitempty"`
}

// ScrapeAll fetches every reservation park concurrently through a
// bounded worker pool with a single join point. Per-park failures leave
// that park out of the result; only cancellation of ctx fails the whole
// batch. Results are sorted by park name for deterministic presentation.
func (s *Scraper) ScrapeAll(ctx context.Context, workers int) *BatchResult {
	start := time.Now()
	ids := parks.ScrapeIDs()

	if workers < 1 {
		workers = 1
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	jobs := make(chan int)
	var (
		mu      sync.Mutex
		results []*ParkSchedule
		wg      sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				park, err := s.FetchPark(ctx, id)
				if err != nil {
					// Context errors surface at the join point below.
					continue
				}
				if park == nil {
					logger.Debug("park absent from scrape", logger.Fields{"park_id": id})
					continue
				}
				logger.IncrCounter("scrape.parks")
				mu.Lock()
				results = append(results, park)
				mu.Unlock()
			}
		}()
	}

	for _, id := range ids {
		select {
		case jobs <- id:
		case <-ctx.Done():
		}
	}
	close(jobs)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	if err := ctx.Err(); err != nil {
		logger.Error("scrape batch aborted", logger.Fields{"elapsed": time.Since(start).String()}, err)
		return &BatchResult{
			Success:   false,
			Parks:     nil,
			Timestamp: time.Now().UTC(),
			Err:       "scrape batch did not complete: " + err.Error(),
		}
	}

	mu.Lock()
	defer mu.Unlock()
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	logger.RecordTiming("scrape.batch", time.Since(start))
	logger.Info("scrape batch finished", logger.Fields{
		"parks":   len(results),
		"elapsed": time.Since(start).String(),
	})

	return &BatchResult{
		Success:   true,
		Parks:     results,
		Timestamp: time.Now().UTC(),
	}
}
