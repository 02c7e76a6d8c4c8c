// Package archive appends daily snapshots to PostgreSQL history tables.
//
// Tables:
//   - fuel_stations: one row per station per snapshot date
//   - fuel_prices: one row per station/fuel-type/publication time
//
// Inserts are append-only with ON CONFLICT DO NOTHING, so re-running a day
// is safe. The CSV snapshot store remains the system of record; the archive
// only accumulates history for querying.
package archive
