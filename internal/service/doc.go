// Package service exposes the court finder's operations to adapters:
// running a full scrape, querying availability, and serving the cached
// snapshot. It owns the wiring between scraper, store, and snapshot
// cache so callers see structured results instead of raw errors.
package service
