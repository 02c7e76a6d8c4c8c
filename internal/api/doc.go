// Package api provides the NSW OneGov FuelCheck REST client.
//
// Endpoints:
//   - Token: GET /oauth/client_credential/accesstoken (basic auth, 12h expiry)
//   - Prices: GET /FuelPriceCheck/v2/fuel/prices (bearer token + apikey)
//
// The client caches the access token and refreshes it with headroom before
// the upstream expiry, retries transient failures with exponential backoff
// and jitter, and routes requests through a circuit breaker so a flapping
// upstream fails fast instead of burning the retry budget every cycle.
package api
