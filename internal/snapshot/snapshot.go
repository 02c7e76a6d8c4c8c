package snapshot

import (
	"time"

	"github.com/edwardmfho/fuelrun/internal/model"
)

// File names inside a snapshot directory.
const (
	StationsFile = "stations.csv"
	PricesFile   = "prices.csv"
	CombinedFile = "combined.csv"
)

const (
	dirPrefix  = "backup_"
	dateLayout = "20060102"
)

// Snapshot holds the three tables exported by one run.
type Snapshot struct {
	Date     time.Time
	Stations []model.Station
	Prices   []model.Price
	Combined []model.CombinedRecord
}

// DirName returns the snapshot directory name for the snapshot's date.
func (s *Snapshot) DirName() string {
	return dirPrefix + s.Date.Format(dateLayout)
}
