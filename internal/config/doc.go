// Package config loads and validates FuelRun configuration.
//
// Configuration comes from a YAML file with ${VAR} environment expansion,
// or entirely from defaults plus the BASE64_AUTH / NSW_APIKEY environment
// variables when no file is present (the cron case).
package config
