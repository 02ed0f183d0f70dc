// internal/api/health_handlers.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/girder/swarm-logs-server/internal/config"
	"github.com/girder/swarm-logs-server/internal/models"
)

const (
	healthPingTimeout = 5 * time.Second
	cpuSampleWindow   = time.Second
	defaultDiskPath   = "/"
)

// @Summary Get API server health
// @Description Returns basic health status for the API server and whether the Docker daemon answers.
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse "Server and runtime are healthy"
// @Failure 503 {object} models.HealthResponse "Docker daemon unreachable"
// @Router /health [get]
func (h *Handlers) HealthCheckHandler(c *gin.Context) {
	response := models.HealthResponse{
		Status:    "healthy",
		Uptime:    formatUptime(time.Since(h.startTime)),
		StartTime: h.startTime,
		Version:   h.version,
		Runtime:   "reachable",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.swarm.Ping(ctx); err != nil {
		log.Warn("health check: docker daemon unreachable", "error", err)
		response.Status = "degraded"
		response.Runtime = "unreachable"
		response.RuntimeError = err.Error()
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get system metrics
// @Description Returns CPU, memory, and disk metrics for the host running the server. Only registered when SYSTEM_METRICS_ENABLED=true. Disk usage is measured on SYSTEM_METRICS_DISK_PATH.
// @Tags Health
// @Produce json
// @Success 200 {object} models.MetricsResponse "System metrics"
// @Failure 500 {object} models.ErrorResponse "Internal server error gathering metrics"
// @Router /health/metrics [get]
func (h *Handlers) SystemMetricsHandler(c *gin.Context) {
	diskPath := config.AppConfig.SystemMetricsDiskPath
	if diskPath == "" {
		diskPath = defaultDiskPath
	}

	metrics, err := gatherSystemMetrics(c.Request.Context(), diskPath)
	if err != nil {
		log.Error("error gathering system metrics", "error", err, "diskPath", diskPath)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Detail: fmt.Sprintf("error gathering system metrics: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, models.MetricsResponse{
		ServerInfo: models.ServerInfo{
			Version:   h.version,
			Uptime:    formatUptime(time.Since(h.startTime)),
			StartTime: h.startTime,
		},
		Metrics: metrics,
	})
}

// formatUptime renders d with the largest non-zero unit first, e.g. "2h 0m 5s".
func formatUptime(d time.Duration) string {
	total := int(d.Seconds())
	parts := []struct {
		value  int
		suffix string
	}{
		{total / 86400, "d"},
		{total / 3600 % 24, "h"},
		{total / 60 % 60, "m"},
	}

	out := ""
	for _, p := range parts {
		if p.value > 0 || out != "" {
			out += fmt.Sprintf("%d%s ", p.value, p.suffix)
		}
	}
	return fmt.Sprintf("%s%ds", out, total%60)
}

// gatherSystemMetrics samples the host. CPU sampling blocks for cpuSampleWindow.
func gatherSystemMetrics(ctx context.Context, diskPath string) (*models.Metrics, error) {
	cpuMetrics, err := cpuUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("cpu metrics: %w", err)
	}
	memMetrics, err := memoryUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("memory metrics: %w", err)
	}
	diskMetrics, err := diskUsage(ctx, diskPath)
	if err != nil {
		return nil, fmt.Errorf("disk metrics for '%s': %w", diskPath, err)
	}
	return &models.Metrics{CPU: cpuMetrics, Mem: memMetrics, Disk: diskMetrics}, nil
}

func cpuUsage(ctx context.Context) (*models.CPUMetrics, error) {
	percent, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err != nil {
		return nil, err
	}

	m := &models.CPUMetrics{NumCPU: runtime.NumCPU()}
	if len(percent) > 0 {
		m.UsagePercent = percent[0]
	}
	// Load averages and per-process usage are best effort; not every platform reports them.
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		m.LoadAvg1, m.LoadAvg5, m.LoadAvg15 = avg.Load1, avg.Load5, avg.Load15
	}
	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if p, err := proc.CPUPercentWithContext(ctx); err == nil {
			m.ProcessPercent = p
		}
	}
	return m, nil
}

func memoryUsage(ctx context.Context) (*models.MemMetrics, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	var rt runtime.MemStats
	runtime.ReadMemStats(&rt)
	m := &models.MemMetrics{
		TotalMem:     vm.Total,
		UsedMem:      vm.Used,
		AvailableMem: vm.Available,
		UsagePercent: vm.UsedPercent,
		ProcessMemMB: float64(rt.Alloc) / (1 << 20),
	}
	if vm.Total > 0 {
		m.ProcessMemPct = float64(rt.Alloc) / float64(vm.Total) * 100
	}
	return m, nil
}

func diskUsage(ctx context.Context, path string) (*models.DiskMetrics, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, err
	}
	return &models.DiskMetrics{
		Path:         path,
		TotalDisk:    usage.Total,
		UsedDisk:     usage.Used,
		FreeDisk:     usage.Free,
		UsagePercent: usage.UsedPercent,
	}, nil
}
