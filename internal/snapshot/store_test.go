package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/edwardmfho/fuelrun/internal/model"
)

func testSnapshot(date time.Time) *Snapshot {
	return &Snapshot{
		Date: date,
		Stations: []model.Station{
			{BrandID: "23", StationID: "1226", Brand: "Caltex", Code: 226, Name: "Caltex Auburn",
				Address: "289 Parramatta Rd, Auburn NSW 2144", Latitude: -33.849302, Longitude: 151.033281, State: "NSW"},
			{BrandID: "2", StationID: "612", Brand: "BP", Code: 612, Name: "BP Mascot",
				Address: "914 Botany Rd, Mascot NSW 2020", Latitude: -33.93, Longitude: 151.19, State: "NSW"},
		},
		Prices: []model.Price{
			{StationCode: 226, State: "NSW", FuelType: "E10", Price: 146.9, LastUpdated: "02/06/2020 01:59:47"},
			{StationCode: 612, State: "NSW", FuelType: "P95", Price: 159.5, LastUpdated: "02/06/2020 02:10:11"},
		},
		Combined: []model.CombinedRecord{
			{Brand: "Caltex", Code: 226, Name: "Caltex Auburn", StationCode: 226, State: "NSW",
				FuelType: "E10", Price: 146.9, LastUpdated: "02/06/2020 01:59:47"},
			{Brand: "BP", Code: 612, Name: "BP Mascot", StationCode: 612, State: "NSW",
				FuelType: "P95", Price: 159.5, LastUpdated: "02/06/2020 02:10:11"},
		},
	}
}

func TestStoreWrite(t *testing.T) {
	base := t.TempDir()
	store := NewStore(base, nil)

	date := time.Date(2020, 6, 2, 14, 30, 0, 0, time.UTC)
	dir, err := store.Write(testSnapshot(date))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := filepath.Join(base, "backup_20200602")
	if dir != want {
		t.Errorf("dir = %q, want %q", dir, want)
	}

	for _, name := range []string{StationsFile, PricesFile, CombinedFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

// TestRoundTrip checks that exported CSVs reload into equivalent tables.
func TestRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	orig := testSnapshot(time.Date(2020, 6, 2, 0, 0, 0, 0, time.UTC))
	if _, err := store.Write(orig); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := store.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}

	if !loaded.Date.Equal(time.Date(2020, 6, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 2020-06-02", loaded.Date)
	}
	if !reflect.DeepEqual(loaded.Stations, orig.Stations) {
		t.Errorf("Stations round-trip mismatch:\n got %+v\nwant %+v", loaded.Stations, orig.Stations)
	}
	if !reflect.DeepEqual(loaded.Prices, orig.Prices) {
		t.Errorf("Prices round-trip mismatch:\n got %+v\nwant %+v", loaded.Prices, orig.Prices)
	}
	if !reflect.DeepEqual(loaded.Combined, orig.Combined) {
		t.Errorf("Combined round-trip mismatch:\n got %+v\nwant %+v", loaded.Combined, orig.Combined)
	}
}

func TestLatestDir(t *testing.T) {
	t.Run("picks lexicographically last", func(t *testing.T) {
		base := t.TempDir()
		store := NewStore(base, nil)

		for _, d := range []time.Time{
			time.Date(2020, 5, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2020, 6, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		} {
			if _, err := store.Write(testSnapshot(d)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
		}

		dir, err := store.LatestDir()
		if err != nil {
			t.Fatalf("LatestDir failed: %v", err)
		}
		if filepath.Base(dir) != "backup_20200602" {
			t.Errorf("LatestDir = %q, want backup_20200602", filepath.Base(dir))
		}
	})

	t.Run("ignores unrelated entries", func(t *testing.T) {
		base := t.TempDir()
		store := NewStore(base, nil)

		if err := os.MkdirAll(filepath.Join(base, "zz-scratch"), 0o755); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Write(testSnapshot(time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC))); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		dir, err := store.LatestDir()
		if err != nil {
			t.Fatalf("LatestDir failed: %v", err)
		}
		if filepath.Base(dir) != "backup_20200601" {
			t.Errorf("LatestDir = %q, want backup_20200601", filepath.Base(dir))
		}
	})

	t.Run("no snapshots", func(t *testing.T) {
		store := NewStore(t.TempDir(), nil)
		if _, err := store.LatestDir(); !errors.Is(err, ErrNoSnapshots) {
			t.Errorf("err = %v, want ErrNoSnapshots", err)
		}
	})

	t.Run("missing base dir", func(t *testing.T) {
		store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"), nil)
		if _, err := store.LatestDir(); !errors.Is(err, ErrNoSnapshots) {
			t.Errorf("err = %v, want ErrNoSnapshots", err)
		}
	})
}

func TestSameDayOverwrite(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	date := time.Date(2020, 6, 2, 0, 0, 0, 0, time.UTC)

	if _, err := store.Write(testSnapshot(date)); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}

	second := testSnapshot(date)
	second.Prices = second.Prices[:1]
	second.Combined = second.Combined[:1]
	if _, err := store.Write(second); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	loaded, err := store.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if len(loaded.Prices) != 1 {
		t.Errorf("len(Prices) = %d, want 1 after overwrite", len(loaded.Prices))
	}
}

func TestWriteEmptyTables(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	snap := &Snapshot{Date: time.Date(2020, 6, 2, 0, 0, 0, 0, time.UTC)}

	if _, err := store.Write(snap); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := store.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest failed: %v", err)
	}
	if len(loaded.Stations) != 0 || len(loaded.Prices) != 0 || len(loaded.Combined) != 0 {
		t.Errorf("expected empty tables, got %d/%d/%d",
			len(loaded.Stations), len(loaded.Prices), len(loaded.Combined))
	}
}
