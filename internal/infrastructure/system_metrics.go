package infrastructure

import (
	"runtime"
	"time"
)

// SystemStats is a runtime snapshot reported by the health endpoint.
type SystemStats struct {
	GoRoutines    int           `json:"goroutines"`
	MemoryUsage   uint64        `json:"memory_usage_bytes"`
	MemorySystem  uint64        `json:"memory_system_bytes"`
	GCCount       uint32        `json:"gc_count"`
	CPUCount      int           `json:"cpu_count"`
	ProcessUptime time.Duration `json:"uptime_ns"`
}

// CollectSystemStats reads the Go runtime counters.
func CollectSystemStats(startTime time.Time) SystemStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return SystemStats{
		GoRoutines:    runtime.NumGoroutine(),
		MemoryUsage:   memStats.Alloc,
		MemorySystem:  memStats.Sys,
		GCCount:       memStats.NumGC,
		CPUCount:      runtime.NumCPU(),
		ProcessUptime: time.Since(startTime),
	}
}
