// Package model defines shared data types used across the FuelRun backend.
//
// Conventions:
//   - Station codes: int64, coerced from the string form the upstream feed
//     uses on the station side. The code is the join key between stations
//     and prices.
//   - Prices: float64 cents per litre, as published by the feed.
//   - LastUpdated: kept as the feed's "02/01/2006 15:04:05" string so CSV
//     snapshots round-trip byte-for-byte.
//
// The csv tags drive snapshot column names; the json tags match the field
// names the rest of the backend exposes.
package model
