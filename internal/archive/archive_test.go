package archive

import (
	"context"
	"testing"
	"time"

	"github.com/edwardmfho/fuelrun/internal/model"
	"github.com/edwardmfho/fuelrun/internal/snapshot"
)

func TestStationBatch(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	stations := []model.Station{
		{BrandID: "2", StationID: "226", Brand: "Caltex", Code: 226, Name: "Caltex Concord", Address: "100 Majors Bay Rd", Latitude: -33.847, Longitude: 151.103, State: "NSW"},
		{Code: 419, Brand: "BP", State: "NSW"},
	}

	batch := stationBatch(stations, date)
	if batch.Len() != 2 {
		t.Errorf("batch.Len() = %d, want 2", batch.Len())
	}
}

func TestPriceBatch(t *testing.T) {
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	prices := []model.Price{
		{StationCode: 226, State: "NSW", FuelType: "E10", Price: 179.9, LastUpdated: "14/03/2025 09:05:00"},
		{StationCode: 226, State: "NSW", FuelType: "P95", Price: 196.5, LastUpdated: "14/03/2025 09:05:00"},
		{StationCode: 419, State: "NSW", FuelType: "U91", Price: 182.3, LastUpdated: "14/03/2025 08:40:00"},
	}

	batch := priceBatch(prices, date)
	if batch.Len() != 3 {
		t.Errorf("batch.Len() = %d, want 3", batch.Len())
	}
}

func TestStoreEmptySnapshot(t *testing.T) {
	// An empty snapshot never touches the pool, so a nil pool is fine.
	a := New(nil, nil)
	snap := &snapshot.Snapshot{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)}

	if err := a.Store(context.Background(), snap); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	stats := a.Stats()
	if stats.Stores != 1 {
		t.Errorf("Stores = %d, want 1", stats.Stores)
	}
	if stats.StationInserts != 0 || stats.PriceInserts != 0 {
		t.Errorf("inserts = %d/%d, want 0/0", stats.StationInserts, stats.PriceInserts)
	}
}
