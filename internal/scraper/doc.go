// Package scraper fetches and parses the NYC Parks tennis reservation
// pages.
//
// Each park id maps to one availability page holding a tab per date and
// a table per tab: rows are courts, cells are time slots. Extraction is
// a pure transform over fetched markup; fetching is best-effort with a
// bounded retry, and a park whose page is missing, redirected, or
// structurally different is treated as absent rather than an error.
package scraper
