package api

// TokenResponse from GET /oauth/client_credential/accesstoken
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	IssuedAt    string `json:"issued_at"`
	ExpiresIn   string `json:"expires_in"` // Seconds, as a string
	ClientID    string `json:"client_id"`
}

// PricesResponse from GET /FuelPriceCheck/v2/fuel/prices
type PricesResponse struct {
	Stations []APIStation `json:"stations"`
	Prices   []APIPrice   `json:"prices"`
}

// APILocation is the nested coordinate pair on a station record.
type APILocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// APIStation represents a station from the FuelCheck feed.
// The station code arrives as a string and is coerced to int64 in ToModel.
type APIStation struct {
	BrandID   string      `json:"brandid"`
	StationID string      `json:"stationid"`
	Brand     string      `json:"brand"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Address   string      `json:"address"`
	Location  APILocation `json:"location"`
	State     string      `json:"state"`
}

// APIPrice represents one published price from the FuelCheck feed.
type APIPrice struct {
	StationCode string  `json:"stationcode"`
	State       string  `json:"state"`
	FuelType    string  `json:"fueltype"`
	Price       float64 `json:"price"`
	LastUpdated string  `json:"lastupdated"`
}
