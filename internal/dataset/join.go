package dataset

import "github.com/edwardmfho/fuelrun/internal/model"

// JoinResult carries the combined table plus join bookkeeping.
type JoinResult struct {
	Combined []model.CombinedRecord

	// Orphans counts price rows with no matching station.
	Orphans int
}

// BuildCombined right-joins stations onto prices by station code.
//
// len(result.Combined) == len(prices) always holds. When several stations
// share a code the last one wins, mirroring a keyed lookup table.
func BuildCombined(stations []model.Station, prices []model.Price) JoinResult {
	byCode := make(map[int64]model.Station, len(stations))
	for _, s := range stations {
		byCode[s.Code] = s
	}

	res := JoinResult{
		Combined: make([]model.CombinedRecord, 0, len(prices)),
	}

	for _, p := range prices {
		rec := model.CombinedRecord{
			StationCode: p.StationCode,
			State:       p.State,
			FuelType:    p.FuelType,
			Price:       p.Price,
			LastUpdated: p.LastUpdated,
		}

		if s, ok := byCode[p.StationCode]; ok {
			rec.BrandID = s.BrandID
			rec.StationID = s.StationID
			rec.Brand = s.Brand
			rec.Code = s.Code
			rec.Name = s.Name
			rec.Address = s.Address
			rec.Latitude = s.Latitude
			rec.Longitude = s.Longitude
		} else {
			res.Orphans++
		}

		res.Combined = append(res.Combined, rec)
	}

	return res
}
