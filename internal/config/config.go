package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. EDGE_SERVER_PORT.
const EnvPrefix = "EDGE"

// Config represents the complete application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server" envconfig:"SERVER"`
	Security     SecurityConfig     `yaml:"security" envconfig:"SECURITY"`
	Logging      LoggingConfig      `yaml:"logging" envconfig:"LOGGING"`
	FeatureStore FeatureStoreConfig `yaml:"feature_store" envconfig:"FEATURE_STORE"`
	Pipeline     PipelineConfig     `yaml:"pipeline" envconfig:"PIPELINE"`
	Paths        PathsConfig        `yaml:"paths" envconfig:"PATHS"`
	Telemetry    TelemetryConfig    `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port             int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout      time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout     time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout      time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes   int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	OperationTimeout time.Duration `yaml:"operation_timeout" envconfig:"OPERATION_TIMEOUT" validate:"gt=0"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" validate:"min=1"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// FeatureStoreConfig selects and tunes the raw table provider. When
// LocalDir is set the tables are read from disk instead of HTTP.
type FeatureStoreConfig struct {
	GameURL           string        `yaml:"game_url" envconfig:"GAME_URL" validate:"required_without=LocalDir"`
	PlayerURL         string        `yaml:"player_url" envconfig:"PLAYER_URL" validate:"required_without=LocalDir"`
	LocalDir          string        `yaml:"local_dir" envconfig:"LOCAL_DIR"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" validate:"gte=0"`
	Burst             int           `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
	UserAgent         string        `yaml:"user_agent" envconfig:"USER_AGENT"`
	RawCacheDir       string        `yaml:"raw_cache_dir" envconfig:"RAW_CACHE_DIR"`
}

// PipelineConfig tunes table building and the result cache.
type PipelineConfig struct {
	FirstSeason     int           `yaml:"first_season" envconfig:"FIRST_SEASON" validate:"min=1920"`
	Seasons         []int         `yaml:"seasons" envconfig:"SEASONS" validate:"dive,min=1920"`
	CacheTTL        time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL" validate:"gte=0"`
	CacheMaxEntries int           `yaml:"cache_max_entries" envconfig:"CACHE_MAX_ENTRIES" validate:"gte=0"`
	BlendMethod     string        `yaml:"blend_method" envconfig:"BLEND_METHOD" validate:"oneof=mean league_adjusted"`
	BlendOwnWeight  float64       `yaml:"blend_own_weight" envconfig:"BLEND_OWN_WEIGHT" validate:"gte=0,lte=1"`
	// WarmOnStart loads the default season window when the server starts.
	WarmOnStart bool `yaml:"warm_on_start" envconfig:"WARM_ON_START"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR"`
}

// TelemetryConfig toggles metrics and tracing.
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	EnableTracing bool   `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
}

// Load builds the configuration from defaults, then the first config file
// found, then EDGE_* environment variables. Later sources win.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file. An empty path skips the
// file layer.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without an env var keep their file or default value.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.FeatureStore.LocalDir == "" {
		for name, url := range map[string]string{
			"game_url":   c.FeatureStore.GameURL,
			"player_url": c.FeatureStore.PlayerURL,
		} {
			if !strings.Contains(url, SeasonPlaceholder) {
				return fmt.Errorf("feature_store.%s must contain %s", name, SeasonPlaceholder)
			}
		}
	}
	if c.Pipeline.CacheTTL == 0 {
		c.Pipeline.CacheTTL = DefaultCacheTTL
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}
	return nil
}

// getConfigFilePath returns the first config file found, or ""
func getConfigFilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             8080,
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     2 * time.Minute,
			IdleTimeout:      60 * time.Second,
			MaxHeaderBytes:   1 << 20, // 1MB
			ShutdownTimeout:  30 * time.Second,
			OperationTimeout: DefaultOperationTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		FeatureStore: FeatureStoreConfig{
			GameURL:           DefaultGameURL,
			PlayerURL:         DefaultPlayerURL,
			Timeout:           DefaultHTTPTimeout,
			RequestsPerSecond: DefaultFetchRPS,
			Burst:             1,
			UserAgent:         AppName + "/" + AppVersion,
		},
		Pipeline: PipelineConfig{
			FirstSeason:     DefaultFirstSeason,
			CacheTTL:        DefaultCacheTTL,
			CacheMaxEntries: DefaultCacheEntries,
			BlendMethod:     "mean",
			BlendOwnWeight:  0.5,
			WarmOnStart:     true,
		},
		Paths: PathsConfig{
			DataDir:   DefaultDataDir,
			LogsDir:   DefaultLogsDir,
			ExportDir: DefaultExportDir,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "edgestats",
			EnableMetrics: true,
		},
	}
}
