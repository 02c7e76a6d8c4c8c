package gather

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/edwardmfho/fuelrun/internal/api"
	"github.com/edwardmfho/fuelrun/internal/dataset"
	"github.com/edwardmfho/fuelrun/internal/model"
	"github.com/edwardmfho/fuelrun/internal/snapshot"
)

// Archiver persists a snapshot to long-term storage. Implementations must be
// safe to call after the CSV snapshot has already been written.
type Archiver interface {
	Store(ctx context.Context, snap *snapshot.Snapshot) error
}

// Result summarizes one gather run.
type Result struct {
	Dir             string
	Stations        int
	Prices          int
	Combined        int
	SkippedStations int
	SkippedPrices   int
	Orphans         int
	Duration        time.Duration
}

// Service fetches current prices, joins them onto stations and writes a
// dated snapshot.
type Service struct {
	client   *api.Client
	store    *snapshot.Store
	archiver Archiver
	states   []string
	logger   *slog.Logger
}

// New creates a gather Service. archiver may be nil to disable archiving.
func New(client *api.Client, store *snapshot.Store, archiver Archiver, states []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if len(states) == 0 {
		states = []string{"NSW"}
	}
	return &Service{
		client:   client,
		store:    store,
		archiver: archiver,
		states:   states,
		logger:   logger,
	}
}

// Run performs one full gather cycle: fetch every configured state, convert
// and join the rows, then write the snapshot. The combined table always has
// exactly one row per price row.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	responses, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	stations, prices, skippedStations, skippedPrices := s.convert(responses)
	join := dataset.BuildCombined(stations, prices)

	snap := &snapshot.Snapshot{
		Date:     start,
		Stations: stations,
		Prices:   prices,
		Combined: join.Combined,
	}

	dir, err := s.store.Write(snap)
	if err != nil {
		return nil, err
	}

	if s.archiver != nil {
		// The CSVs are already on disk, so an archive failure does not
		// fail the run.
		if err := s.archiver.Store(ctx, snap); err != nil {
			s.logger.Warn("archive store failed", "error", err)
		}
	}

	result := &Result{
		Dir:             dir,
		Stations:        len(stations),
		Prices:          len(prices),
		Combined:        len(join.Combined),
		SkippedStations: skippedStations,
		SkippedPrices:   skippedPrices,
		Orphans:         join.Orphans,
		Duration:        time.Since(start),
	}

	s.logger.Info("gather run complete",
		"dir", result.Dir,
		"stations", result.Stations,
		"prices", result.Prices,
		"combined", result.Combined,
		"orphans", result.Orphans,
		"duration", result.Duration,
	)
	return result, nil
}

// fetchAll requests every configured state concurrently.
func (s *Service) fetchAll(ctx context.Context) ([]*api.PricesResponse, error) {
	responses := make([]*api.PricesResponse, len(s.states))

	g, ctx := errgroup.WithContext(ctx)
	for i, state := range s.states {
		g.Go(func() error {
			resp, err := s.client.GetPrices(ctx, state)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}

// convert flattens the API responses into model rows. Stations are
// deduplicated by code across states; rows with malformed codes are skipped
// and counted rather than failing the run.
func (s *Service) convert(responses []*api.PricesResponse) (stations []model.Station, prices []model.Price, skippedStations, skippedPrices int) {
	seen := make(map[int64]bool)

	for _, resp := range responses {
		for i := range resp.Stations {
			station, err := resp.Stations[i].ToModel()
			if err != nil {
				skippedStations++
				s.logger.Warn("skipping station", "code", resp.Stations[i].Code, "error", err)
				continue
			}
			if seen[station.Code] {
				continue
			}
			seen[station.Code] = true
			stations = append(stations, station)
		}

		for i := range resp.Prices {
			price, err := resp.Prices[i].ToModel()
			if err != nil {
				skippedPrices++
				s.logger.Warn("skipping price", "stationcode", resp.Prices[i].StationCode, "error", err)
				continue
			}
			prices = append(prices, price)
		}
	}

	return stations, prices, skippedStations, skippedPrices
}
