package archive

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edwardmfho/fuelrun/internal/model"
	"github.com/edwardmfho/fuelrun/internal/snapshot"
)

// Metrics holds counters for the archiver.
type Metrics struct {
	StationInserts   int64
	StationConflicts int64
	PriceInserts     int64
	PriceConflicts   int64
	Errors           int64
	Stores           int64
}

// Archiver appends snapshot rows to the PostgreSQL history tables.
type Archiver struct {
	db     *pgxpool.Pool
	logger *slog.Logger

	mu      sync.Mutex
	metrics Metrics
}

// New creates an Archiver backed by the given pool.
func New(db *pgxpool.Pool, logger *slog.Logger) *Archiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archiver{db: db, logger: logger}
}

// Store inserts the snapshot's station and price rows. Rows already present
// are counted as conflicts and left untouched (never update, only insert).
func (a *Archiver) Store(ctx context.Context, snap *snapshot.Snapshot) error {
	start := time.Now()

	stationConflicts, err := a.insertBatch(ctx, stationBatch(snap.Stations, snap.Date), len(snap.Stations))
	if err != nil {
		a.recordError()
		return err
	}

	priceConflicts, err := a.insertBatch(ctx, priceBatch(snap.Prices, snap.Date), len(snap.Prices))
	if err != nil {
		a.recordError()
		return err
	}

	a.mu.Lock()
	a.metrics.StationInserts += int64(len(snap.Stations) - stationConflicts)
	a.metrics.StationConflicts += int64(stationConflicts)
	a.metrics.PriceInserts += int64(len(snap.Prices) - priceConflicts)
	a.metrics.PriceConflicts += int64(priceConflicts)
	a.metrics.Stores++
	a.mu.Unlock()

	a.logger.Info("snapshot archived",
		"stations", len(snap.Stations),
		"prices", len(snap.Prices),
		"station_conflicts", stationConflicts,
		"price_conflicts", priceConflicts,
		"duration", time.Since(start),
	)
	return nil
}

// Ping verifies the database connection is alive.
func (a *Archiver) Ping(ctx context.Context) error {
	return a.db.Ping(ctx)
}

// Stats returns current metrics.
func (a *Archiver) Stats() Metrics {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.metrics
}

func (a *Archiver) recordError() {
	a.mu.Lock()
	a.metrics.Errors++
	a.mu.Unlock()
}

// insertBatch sends the batch and counts rows skipped by ON CONFLICT.
func (a *Archiver) insertBatch(ctx context.Context, batch *pgx.Batch, n int) (conflicts int, err error) {
	if n == 0 {
		return 0, nil
	}

	results := a.db.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < n; i++ {
		ct, err := results.Exec()
		if err != nil {
			return 0, err
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	return conflicts, nil
}

// stationBatch queues one insert per station, keyed by (snapshot_date, code).
func stationBatch(stations []model.Station, date time.Time) *pgx.Batch {
	day := date.Format("2006-01-02")
	batch := &pgx.Batch{}
	for _, s := range stations {
		batch.Queue(`
			INSERT INTO fuel_stations (snapshot_date, brand_id, station_id, brand, code, name, address, latitude, longitude, state)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (snapshot_date, code) DO NOTHING
		`, day, s.BrandID, s.StationID, s.Brand, s.Code, s.Name, s.Address, s.Latitude, s.Longitude, s.State)
	}
	return batch
}

// priceBatch queues one insert per price, keyed by
// (station_code, fuel_type, last_updated).
func priceBatch(prices []model.Price, date time.Time) *pgx.Batch {
	day := date.Format("2006-01-02")
	batch := &pgx.Batch{}
	for _, p := range prices {
		batch.Queue(`
			INSERT INTO fuel_prices (snapshot_date, station_code, state, fuel_type, price, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (station_code, fuel_type, last_updated) DO NOTHING
		`, day, p.StationCode, p.State, p.FuelType, p.Price, p.LastUpdated)
	}
	return batch
}
