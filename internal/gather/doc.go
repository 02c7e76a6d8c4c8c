// Package gather orchestrates one collection cycle: fetch prices and
// stations for each configured state, coerce station codes, right-join
// stations onto prices and write the dated CSV snapshot, optionally
// archiving the rows to PostgreSQL.
package gather
