// Package refresher runs the gather job on a fixed interval.
//
// The refresher:
//   - Runs the job once immediately on start
//   - Re-runs it every interval (default 12h, matching token expiry)
//   - Bounds each cycle with a timeout
//   - Tracks cycle and error counts for the health endpoint
package refresher
