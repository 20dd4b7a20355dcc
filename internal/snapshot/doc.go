// Package snapshot holds the most recent complete scrape result in
// process memory, so "use previous data" requests avoid re-scraping.
package snapshot
