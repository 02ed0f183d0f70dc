// internal/models/models.go
package models

import "time"

// ErrorResponse represents a standard error message format
type ErrorResponse struct {
	Detail string `json:"detail" example:"Service web doesn't exist"`
}

// --- Structs for Health ---

// HealthResponse is returned by the public health endpoint.
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Uptime    string    `json:"uptime" example:"1h 2m 3s"`
	StartTime time.Time `json:"startTime"`
	Version   string    `json:"version" example:"development"`
	// Runtime reports whether the Docker daemon answered a ping ("reachable" or "unreachable").
	Runtime string `json:"runtime" example:"reachable"`
	// RuntimeError carries the ping failure, if any.
	RuntimeError string `json:"runtimeError,omitempty"`
}

// ServerInfo identifies the running server in metrics responses.
type ServerInfo struct {
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	StartTime time.Time `json:"startTime"`
}

// MetricsResponse wraps host metrics with server information.
type MetricsResponse struct {
	ServerInfo ServerInfo `json:"serverInfo"`
	Metrics    *Metrics   `json:"metrics"`
}

// Metrics groups CPU, memory and disk usage.
type Metrics struct {
	CPU  *CPUMetrics  `json:"cpu"`
	Mem  *MemMetrics  `json:"mem"`
	Disk *DiskMetrics `json:"disk"`
}

// CPUMetrics holds host and process CPU usage.
type CPUMetrics struct {
	UsagePercent   float64 `json:"usagePercent"`
	NumCPU         int     `json:"numCPU"`
	LoadAvg1       float64 `json:"loadAvg1"`
	LoadAvg5       float64 `json:"loadAvg5"`
	LoadAvg15      float64 `json:"loadAvg15"`
	ProcessPercent float64 `json:"processPercent"`
}

// MemMetrics holds host and process memory usage.
type MemMetrics struct {
	TotalMem      uint64  `json:"totalMem"`
	UsedMem       uint64  `json:"usedMem"`
	AvailableMem  uint64  `json:"availableMem"`
	UsagePercent  float64 `json:"usagePercent"`
	ProcessMemMB  float64 `json:"processMemMB"`
	ProcessMemPct float64 `json:"processMemPct"`
}

// DiskMetrics holds usage of a single filesystem path.
type DiskMetrics struct {
	Path         string  `json:"path"`
	TotalDisk    uint64  `json:"totalDisk"`
	UsedDisk     uint64  `json:"usedDisk"`
	FreeDisk     uint64  `json:"freeDisk"`
	UsagePercent float64 `json:"usagePercent"`
}
