package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/nyctennis/courtfinder/internal/logger"
	"github.com/nyctennis/courtfinder/internal/slot"
)

const (
	// DefaultBaseURL is the reservation site root; reservation links are
	// resolved against it.
	DefaultBaseURL = "https://www.nycgovparks.org"

	// UserAgent mimics a desktop browser; the reservation system serves
	// a stripped page to unknown clients.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

	maxFetchRetries = 3
)

// Scraper fetches and parses park availability pages.
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a Scraper against baseURL with the given per-request
// timeout.
func New(baseURL string, timeout time.Duration) *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// DaySchedule is one date tab's extracted slots for a park.
type DaySchedule struct {
	Date        string        `json:"date"` // tab id, e.g. "2026-09-01"
	DisplayDate string        `json:"display_date"`
	Records     []slot.Record `json:"records"`
}

// ParkSchedule aggregates one park's extraction result.
type ParkSchedule struct {
	ParkID  int           `json:"park_id"`
	Name    string        `json:"name"`
	Address string        `json:"address"`
	Days    []DaySchedule `json:"days"`
}

// Records flattens all days into a single record list.
func (p *ParkSchedule) Records() []slot.Record {
	var out []slot.Record
	for _, d := range p.Days {
		out = append(out, d.Records...)
	}
	return out
}

// availabilityURL returns the page URL for one park id.
func (s *Scraper) availabilityURL(parkID int) string {
	return fmt.Sprintf("%s/tennisreservation/availability/%d", s.baseURL, parkID)
}

// FetchPark fetches and parses one park's availability page. A non-2xx
// response, a redirect away from the availability page, or a page with
// no park name all yield (nil, nil): the park is absent, not broken.
// Transport failures are retried up to maxFetchRetries before the park
// is likewise reported absent.
func (s *Scraper) FetchPark(ctx context.Context, parkID int) (*ParkSchedule, error) {
	url := s.availabilityURL(parkID)

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Referer", s.baseURL+"/")

		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.Request.URL.String() != url {
			logger.Warn("redirect detected, treating park as absent", logger.Fields{
				"park_id": parkID,
				"landed":  resp.Request.URL.String(),
			})
			return backoff.Permanent(errParkAbsent)
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error: %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			logger.Warn("non-200 response, treating park as absent", logger.Fields{
				"park_id": parkID,
				"status":  resp.StatusCode,
			})
			return backoff.Permanent(errParkAbsent)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxFetchRetries-1), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, errParkAbsent) {
			return nil, nil
		}
		logger.IncrCounter("scrape.fetch_failures")
		logger.Error("fetching park page failed", logger.Fields{"park_id": parkID}, err)
		// Propagate context errors so the orchestrator can tell a timed
		// out batch from an absent park.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}

	return s.ParsePark(strings.NewReader(string(body)), parkID)
}

var errParkAbsent = errors.New("park page absent")

// ParsePark extracts one park's schedule from raw page markup. It is a
// pure transform: malformed rows and cells are skipped, and a page with
// no park name yields (nil, nil).
func (s *Scraper) ParsePark(r io.Reader, parkID int) (*ParkSchedule, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	details := doc.Find("#location_details")
	name := strings.TrimSpace(details.Find("h2").First().Text())
	if name == "" {
		return nil, nil
	}
	address := strings.TrimSpace(details.Find("p").First().Text())

	park := &ParkSchedule{
		ParkID:  parkID,
		Name:    name,
		Address: address,
	}

	doc.Find(".nav-tabs li a").Each(func(_ int, tab *goquery.Selection) {
		href, ok := tab.Attr("href")
		if !ok || !strings.HasPrefix(href, "#") {
			return
		}
		date := strings.TrimPrefix(href, "#")
		if date == "" {
			return
		}

		day := DaySchedule{
			Date:        date,
			DisplayDate: strings.TrimSpace(tab.Text()),
		}

		seen := make(map[string]bool)
		doc.Find("#"+date).Find("table tr").Each(func(rowIndex int, row *goquery.Selection) {
			if rowIndex == 0 {
				return // header row
			}
			cells := row.Find("td")
			court := strings.TrimSpace(cells.First().Text())
			if court == "" {
				return
			}

			cells.Slice(1, cells.Length()).Each(func(_ int, cell *goquery.Selection) {
				rec, ok := s.parseCell(cell, parkID, court, date)
				if !ok {
					return
				}
				dedupKey := rec.Time + "|" + rec.CourtID
				if seen[dedupKey] {
					return
				}
				seen[dedupKey] = true
				day.Records = append(day.Records, rec)
			})
		})

		if len(day.Records) > 0 {
			park.Days = append(park.Days, day)
		}
	})

	return park, nil
}

// parseCell classifies one time cell. Only reservable and booked slots
// are retained; everything else is dropped.
func (s *Scraper) parseCell(cell *goquery.Selection, parkID int, court, date string) (slot.Record, bool) {
	timeLabel := strings.TrimSpace(cell.Find("span").First().Text())
	if timeLabel == "" {
		timeLabel = strings.TrimSpace(cell.Text())
	}
	if timeLabel == "" || timeLabel == "Not Available" || timeLabel == "Booked" {
		return slot.Record{}, false
	}

	switch {
	case cell.HasClass("status2"):
		href, ok := cell.Find("a.assign_someone").Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			// A reservable cell without a link violates the record
			// invariant; drop it rather than persist a dead slot.
			return slot.Record{}, false
		}
		link := s.absoluteLink(strings.TrimSpace(href))
		return slot.NewRecord(parkID, court, date, timeLabel, slot.StatusReservable, link), true
	case cell.HasClass("status3"):
		return slot.NewRecord(parkID, court, date, timeLabel, slot.StatusBooked, ""), true
	default:
		return slot.Record{}, false
	}
}

// absoluteLink resolves a reservation href against the site root.
func (s *Scraper) absoluteLink(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return s.baseURL + "/" + strings.TrimLeft(href, "/")
}
