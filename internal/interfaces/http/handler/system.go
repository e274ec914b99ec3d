package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/interfaces/http/dto"
)

// DatabasePinger is the storage liveness check used by Health.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves health and build information
type SystemHandler struct {
	BaseHandler
	db        DatabasePinger
	driver    string
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. db may be nil for the memory driver.
func NewSystemHandler(db DatabasePinger, driver, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		driver:    driver,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check result
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Driver   string `json:"driver"`
	Database string `json:"database"`
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health reports liveness and storage reachability.
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().UTC().Format(time.RFC3339),
		Driver:   h.driver,
		Database: "connected",
	}
	status := http.StatusOK

	if h.db == nil {
		resp.Database = "in-memory"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Database = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, resp)
}

// GetSystemInfo returns version and uptime.
// GET /system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "AYS Persuratan API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}
