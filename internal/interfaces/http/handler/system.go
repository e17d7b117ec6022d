package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves liveness and readiness probes
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	db        Pinger
}

// NewSystemHandler creates a SystemHandler; db is pinged by Ready
func NewSystemHandler(name, version string, db Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		db:        db,
	}
}

// HealthResponse is the body of /health and /ready
type HealthResponse struct {
	Status    string `json:"status"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

func (h *SystemHandler) health(status string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.health("ok"))
}

// Ready handles GET /ready; it answers 503 while the database is unreachable
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, h.health("ready"))
}
