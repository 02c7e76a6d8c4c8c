// Package snapshot implements the dated CSV snapshot store.
//
// A snapshot is one directory per run day under the base dir:
//
//	data/backup_20200602/stations.csv
//	data/backup_20200602/prices.csv
//	data/backup_20200602/combined.csv
//
// Directory names sort lexicographically by date, so "latest" is simply the
// last backup_* entry. Re-running on the same day overwrites that day's
// files in place.
package snapshot
