// Package store persists availability records in Postgres and answers
// the availability queries.
//
// Records are upserted by their natural key (park, court, date, time),
// one transaction per park batch, so a crash mid-batch never leaves a
// park's current view half-replaced. Whether slots absent from a fresh
// batch are purged or retained as history is a configuration choice.
package store
