package model

// Station describes a single service station from the station feed.
type Station struct {
	BrandID   string  `csv:"brandid" json:"brandid"`
	StationID string  `csv:"stationid" json:"stationid"`
	Brand     string  `csv:"brand" json:"brand"`
	Code      int64   `csv:"code" json:"code"`
	Name      string  `csv:"name" json:"name"`
	Address   string  `csv:"address" json:"address"`
	Latitude  float64 `csv:"latitude" json:"latitude"`
	Longitude float64 `csv:"longitude" json:"longitude"`
	State     string  `csv:"state" json:"state"`
}

// Price is one published price: a station/fuel-type pair at a point in time.
type Price struct {
	StationCode int64   `csv:"stationcode" json:"stationcode"`
	State       string  `csv:"state" json:"state"`
	FuelType    string  `csv:"fueltype" json:"fueltype"`
	Price       float64 `csv:"price" json:"price"`
	LastUpdated string  `csv:"lastupdated" json:"lastupdated"`
}

// CombinedRecord is one row of the joined dataset: the station columns
// followed by the price columns, one row per price row. Station columns are
// zero-valued when the price has no matching station.
type CombinedRecord struct {
	BrandID   string  `csv:"brandid" json:"brandid"`
	StationID string  `csv:"stationid" json:"stationid"`
	Brand     string  `csv:"brand" json:"brand"`
	Code      int64   `csv:"code" json:"code"`
	Name      string  `csv:"name" json:"name"`
	Address   string  `csv:"address" json:"address"`
	Latitude  float64 `csv:"latitude" json:"latitude"`
	Longitude float64 `csv:"longitude" json:"longitude"`

	StationCode int64   `csv:"stationcode" json:"stationcode"`
	State       string  `csv:"state" json:"state"`
	FuelType    string  `csv:"fueltype" json:"fueltype"`
	Price       float64 `csv:"price" json:"price"`
	LastUpdated string  `csv:"lastupdated" json:"lastupdated"`
}

// HasStation reports whether the row found a station during the join.
func (r CombinedRecord) HasStation() bool {
	return r.Code != 0
}
