// apiprobe exercises the live NSW FuelCheck API: fetches a token, then the
// current prices feed, and prints a few rows.
// Usage: go run ./cmd/apiprobe
//
// Required environment variables:
//
//	BASE64_AUTH - Base64-encoded "key:secret" client credential
//	NSW_APIKEY  - Consumer key sent in the apikey header
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/edwardmfho/fuelrun/internal/api"
	"github.com/edwardmfho/fuelrun/internal/config"
	"github.com/edwardmfho/fuelrun/internal/dataset"
	"github.com/edwardmfho/fuelrun/internal/model"
)

func main() {
	_ = godotenv.Load()

	auth := os.Getenv(config.EnvAuthorization)
	apikey := os.Getenv(config.EnvAPIKey)
	if auth == "" || apikey == "" {
		log.Fatalf("%s and %s must be set", config.EnvAuthorization, config.EnvAPIKey)
	}

	client := api.NewClient(
		config.DefaultBaseURL,
		auth,
		apikey,
		api.WithTimeout(30*time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("=== Fetching access token ===")
	token, err := client.FetchAccessToken(ctx)
	if err != nil {
		log.Fatalf("FetchAccessToken failed: %v", err)
	}
	fmt.Printf("Token type: %s, expires in: %ss\n", token.TokenType, token.ExpiresIn)

	fmt.Println("\n=== Fetching prices (NSW) ===")
	resp, err := client.GetPrices(ctx, config.DefaultState)
	if err != nil {
		log.Fatalf("GetPrices failed: %v", err)
	}
	fmt.Printf("Fetched %d stations, %d prices\n", len(resp.Stations), len(resp.Prices))

	for i, s := range resp.Stations {
		if i >= 3 {
			break
		}
		station, err := s.ToModel()
		if err != nil {
			log.Fatalf("station %q: %v", s.Code, err)
		}
		fmt.Printf("  %d. [%d] %s - %s\n", i+1, station.Code, station.Brand, station.Name)
	}
	for i, p := range resp.Prices {
		if i >= 3 {
			break
		}
		price, err := p.ToModel()
		if err != nil {
			log.Fatalf("price %q: %v", p.StationCode, err)
		}
		fmt.Printf("  %d. station %d %s: %.1f (updated %s)\n", i+1, price.StationCode, price.FuelType, price.Price, price.LastUpdated)
	}

	fmt.Println("\n=== Joining stations onto prices ===")
	var stations []model.Station
	for i := range resp.Stations {
		s, err := resp.Stations[i].ToModel()
		if err != nil {
			continue
		}
		stations = append(stations, s)
	}
	var prices []model.Price
	for i := range resp.Prices {
		p, err := resp.Prices[i].ToModel()
		if err != nil {
			continue
		}
		prices = append(prices, p)
	}

	join := dataset.BuildCombined(stations, prices)
	fmt.Printf("Combined rows: %d (prices: %d, orphans: %d)\n", len(join.Combined), len(prices), join.Orphans)

	fmt.Println("\n=== All probes passed! ===")
}
