package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/dacdangvan/seotool-sub006/models"
)

// memoryDegradedPct is the system memory usage above which the service
// reports itself degraded.
const memoryDegradedPct = 90.0

// StatsSource exposes the renderer state reported by the health endpoint.
type StatsSource interface {
	Stats() models.RendererStats
	IsLimitReached() bool
}

// memoryUsedPct is replaced in tests.
var memoryUsedPct = func() (float64, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return v.UsedPercent, nil
}

// Health returns a handler for GET /api/v1/health.
//
// Status is degraded when the render ceiling was hit or system memory is
// nearly exhausted. src may be nil when rendering is disabled.
func Health(src StatsSource, startTime time.Time, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := models.HealthResponse{
			Status:  "healthy",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		}
		if src != nil {
			resp.Renderer = src.Stats()
			resp.RenderLimitHit = src.IsLimitReached()
		}

		used, err := memoryUsedPct()
		if err != nil {
			slog.Debug("health: memory stats unavailable", "error", err)
		}
		resp.MemoryUsedPct = used

		if resp.RenderLimitHit || used > memoryDegradedPct {
			resp.Status = "degraded"
		}
		c.JSON(http.StatusOK, resp)
	}
}
