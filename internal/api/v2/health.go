// internal/api/v2/health.go
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthResponse reports service liveness, dataset state and basic host
// resource usage.
type HealthResponse struct {
	Status        string        `json:"status"`
	Version       string        `json:"version"`
	UptimeSeconds float64       `json:"uptime_seconds"`
	Database      string        `json:"database"`
	FireRecords   int64         `json:"fire_records"`
	System        *SystemHealth `json:"system,omitempty"`
}

// SystemHealth carries host resource usage.
type SystemHealth struct {
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	CPUPercent        float64 `json:"cpu_percent"`
}

// HealthCheck handles the API health check endpoint
func (c *Controller) HealthCheck(ctx echo.Context) error {
	resp := &HealthResponse{
		Status:        "healthy",
		Version:       c.Settings.Version,
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Database:      "connected",
	}

	count, err := c.DS.CountFires(nil)
	if err != nil {
		resp.Status = "degraded"
		resp.Database = "error"
	} else {
		resp.FireRecords = count
	}

	resp.System = collectSystemHealth()

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return ctx.JSON(code, resp)
}

// collectSystemHealth gathers host metrics, returning nil when the host
// does not expose them.
func collectSystemHealth() *SystemHealth {
	sh := &SystemHealth{}
	populated := false

	if vm, err := mem.VirtualMemory(); err == nil {
		sh.MemoryUsedPercent = vm.UsedPercent
		populated = true
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		sh.CPUPercent = percents[0]
		populated = true
	}

	if !populated {
		return nil
	}
	return sh
}
