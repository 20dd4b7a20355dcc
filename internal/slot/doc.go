// Package slot provides the domain types for tennis court availability.
//
// A slot is one bookable (date, court, time) unit at a park. The package
// defines the closed status set (reservable, booked, unavailable), the
// persisted availability record with its natural key, 12-hour clock
// parsing with time-of-day bucketing, and the canonical slot ordering
// used for presentation.
package slot
