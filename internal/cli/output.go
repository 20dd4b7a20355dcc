package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nyctennis/courtfinder/internal/parks"
	"github.com/nyctennis/courtfinder/internal/scraper"
	"github.com/nyctennis/courtfinder/internal/service"
	"github.com/nyctennis/courtfinder/internal/slot"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteScrapeResult renders a batch result.
func WriteScrapeResult(w io.Writer, result *scraper.BatchResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if !result.Success {
		fmt.Fprintf(w, "Scrape failed: %s\n", result.Err)
		return nil
	}

	fmt.Fprintf(w, "Scraped %d parks at %s\n\n", len(result.Parks),
		result.Timestamp.Format(time.RFC3339))
	for _, park := range result.Parks {
		summary := service.Summarize(park.Records())
		fmt.Fprintf(w, "%s (park %d): %d slots", park.Name, park.ParkID, summary.Total)
		if summary.Total > 0 {
			fmt.Fprintf(w, " (morning %d, afternoon %d, evening %d)",
				summary.Morning, summary.Afternoon, summary.Evening)
		}
		fmt.Fprintln(w)
		for _, day := range park.Days {
			open := 0
			for _, rec := range day.Records {
				if rec.IsReservable {
					open++
				}
			}
			fmt.Fprintf(w, "  %s: %d slots, %d reservable\n", day.Date, len(day.Records), open)
		}
	}
	return nil
}

type availabilityOutput struct {
	Park    parks.Info    `json:"park"`
	Date    string        `json:"date"`
	Summary slot.Summary  `json:"summary"`
	Slots   []slot.Record `json:"slots"`
}

// WriteAvailability renders the open slots for one park and date.
func WriteAvailability(w io.Writer, park parks.Info, date string, records []slot.Record, format OutputFormat) error {
	summary := service.Summarize(records)

	if format == FormatJSON {
		return writeJSON(w, availabilityOutput{
			Park:    park,
			Date:    date,
			Summary: summary,
			Slots:   records,
		})
	}

	if len(records) == 0 {
		fmt.Fprintf(w, "No open slots at %s on %s.\n", park.Name, date)
		return nil
	}

	fmt.Fprintf(w, "%s on %s: %d open slots (morning %d, afternoon %d, evening %d)\n",
		park.Name, date, summary.Total, summary.Morning, summary.Afternoon, summary.Evening)
	for _, rec := range records {
		fmt.Fprintf(w, "  %-10s %-12s %s\n", rec.CourtID, rec.Time, rec.ReservationLink)
	}
	return nil
}

type statusOutput struct {
	LastUpdated time.Time `json:"last_updated"`
	Age         string    `json:"age"`
}

// WriteStatus renders data freshness.
func WriteStatus(w io.Writer, latest time.Time, format OutputFormat) error {
	age := time.Since(latest).Round(time.Minute)
	if format == FormatJSON {
		return writeJSON(w, statusOutput{LastUpdated: latest, Age: age.String()})
	}
	fmt.Fprintf(w, "Availability last refreshed %s (%s ago)\n",
		latest.Format(time.RFC3339), age)
	return nil
}

// WriteParks renders the reference park list.
func WriteParks(w io.Writer, list []parks.Info, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, list)
	}
	for _, p := range list {
		fmt.Fprintf(w, "%2d  %-32s %-45s %d courts\n", p.ID, p.Name, p.Address, p.CourtCount)
	}
	return nil
}
