// Package database provides the PostgreSQL connection pool for the
// optional snapshot archive. The CSV snapshot store remains the system of
// record; the archive only accumulates history for querying.
package database
