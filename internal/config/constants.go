package config

import "time"

// Application constants
const (
	AppName    = "edgestats"
	AppVersion = "1.0.0"

	DefaultGameURL   = "https://github.com/theedgepredictor/nfl-feature-store/raw/main/data/feature_store/event/regular_season_game/{season}.csv"
	DefaultPlayerURL = "https://github.com/theedgepredictor/fantasy-data-pump/raw/main/processed/season/football/nfl/{season}.csv"

	// SeasonPlaceholder marks where URL templates take the season.
	SeasonPlaceholder = "{season}"

	// DefaultFirstSeason is the oldest season loaded when none are given.
	DefaultFirstSeason = 2019

	// SeasonRolloverMonth is the month a new NFL season becomes current,
	// ahead of the June window opening.
	SeasonRolloverMonth = time.May

	DefaultCacheTTL     = time.Hour
	DefaultCacheEntries = 16

	DefaultHTTPTimeout      = 60 * time.Second
	DefaultFetchRPS         = 2.0
	DefaultOperationTimeout = 5 * time.Minute

	// Rate limiting of the HTTP API
	DefaultRateLimit = 50
	DefaultBurstSize = 100

	DefaultLogLevel  = "info"
	DefaultLogFile   = "logs/edgestats.log"
	DefaultDataDir   = "data"
	DefaultLogsDir   = "logs"
	DefaultExportDir = "data/exports"
)
