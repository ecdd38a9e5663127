// Package config loads edgestats configuration.
//
// # Configuration Sources
//
// Values are layered, later sources winning:
//
//	1. Default()
//	2. A YAML file: $EDGE_CONFIG_FILE, config.yaml or configs/config.yaml
//	3. Environment variables prefixed EDGE_
//
// Environment variables follow the struct nesting:
//
//	EDGE_SERVER_PORT=8080
//	EDGE_FEATURE_STORE_LOCAL_DIR=/srv/feature-store
//	EDGE_PIPELINE_SEASONS=2022,2023,2024
//	EDGE_PIPELINE_CACHE_TTL=1h
//	EDGE_LOGGING_LEVEL=debug
//
// The merged result is checked with go-playground/validator tags.
//
// # Seasons
//
// CurrentSeason and DefaultSeasons derive the season range served when a
// request names none.
package config
