package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"edgestats/internal/cache"
	"edgestats/internal/config"
	"edgestats/internal/infrastructure"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	buildID   string
	paths     config.PathsConfig
	features  *FeatureService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// BuildInfo is stamped into binaries at link time.
type BuildInfo struct {
	Version   string
	BuildTime string
	BuildID   string
}

// NewHealthService creates a health service. features may be nil, in which
// case readiness reports the pipeline as not ready.
func NewHealthService(build BuildInfo, paths config.PathsConfig, features *FeatureService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", build.Version),
		slog.String("build_time", build.BuildTime),
		slog.String("build_id", build.BuildID))

	return &HealthService{
		version:   build.Version,
		buildTime: build.BuildTime,
		buildID:   build.BuildID,
		paths:     paths,
		features:  features,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}

	hs.logger.DebugContext(ctx, "health check completed",
		slog.String("status", status.Status),
		slog.Duration("uptime", time.Since(hs.startTime)))

	return status
}

// ReadinessCheck returns readiness status
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	status.Services["pipeline"] = hs.checkPipelineHealth()
	status.Services["data"] = hs.checkDataHealth()

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	stats := infrastructure.CollectSystemStats(hs.startTime)
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":       stats.ProcessUptime.Seconds(),
			"go_version":   runtime.Version(),
			"goroutines":   stats.GoRoutines,
			"memory_bytes": stats.MemoryUsage,
			"gc_count":     stats.GCCount,
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}

	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	if hs.buildID != "" {
		result["build_id"] = hs.buildID
	}

	return result
}

// CacheStats reports the feature table cache, if the pipeline is wired.
func (hs *HealthService) CacheStats() (cache.Stats, error) {
	if hs.features == nil {
		return cache.Stats{}, ErrServiceUnavailable
	}
	return hs.features.CacheStats(), nil
}

func (hs *HealthService) checkPipelineHealth() ServiceHealth {
	if hs.features == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "feature service not initialized",
		}
	}
	stats := hs.features.CacheStats()
	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d cached table sets", stats.Entries),
		Uptime:  time.Since(hs.startTime).String(),
	}
}

// checkDataHealth verifies the data directory exists and is writable.
func (hs *HealthService) checkDataHealth() ServiceHealth {
	dataDir := hs.paths.DataDir
	if dataDir == "" {
		return ServiceHealth{Status: "ready", Message: "no data directory configured"}
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Data directory not found: %s", dataDir),
		}
	}

	marker, err := os.CreateTemp(dataDir, ".ready-*")
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Cannot write to data directory: %v", err),
		}
	}
	marker.Close()
	os.Remove(filepath.Clean(marker.Name()))

	return ServiceHealth{
		Status:  "ready",
		Message: "Data directory is writable",
	}
}
