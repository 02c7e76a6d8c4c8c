package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/edwardmfho/fuelrun/internal/model"
)

// ParseStationCode coerces the feed's string station code to int64.
// The code is the join key between stations and prices, so a malformed
// code is an error rather than a zero value.
func ParseStationCode(code string) (int64, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, errors.New("empty station code")
	}

	n, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse station code %q: %w", code, err)
	}

	return n, nil
}

// ToModel converts an APIStation to model.Station, flattening the nested
// location and coercing the code.
func (s *APIStation) ToModel() (model.Station, error) {
	code, err := ParseStationCode(s.Code)
	if err != nil {
		return model.Station{}, err
	}

	return model.Station{
		BrandID:   s.BrandID,
		StationID: s.StationID,
		Brand:     s.Brand,
		Code:      code,
		Name:      s.Name,
		Address:   s.Address,
		Latitude:  s.Location.Latitude,
		Longitude: s.Location.Longitude,
		State:     s.State,
	}, nil
}

// ToModel converts an APIPrice to model.Price.
func (p *APIPrice) ToModel() (model.Price, error) {
	code, err := ParseStationCode(p.StationCode)
	if err != nil {
		return model.Price{}, err
	}

	return model.Price{
		StationCode: code,
		State:       p.State,
		FuelType:    p.FuelType,
		Price:       p.Price,
		LastUpdated: p.LastUpdated,
	}, nil
}
