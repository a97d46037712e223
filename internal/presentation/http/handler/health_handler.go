package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockroom-api/internal/presentation/http/dto/response"
	"github.com/sangkips/stockroom-api/pkg/apperror"
	"github.com/sangkips/stockroom-api/pkg/logger"
)

// Pinger reports whether a backing store is reachable
type Pinger func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	service string
	checks  map[string]Pinger
}

// NewHealthHandler creates a health handler. Every check must pass for the
// service to report ready.
func NewHealthHandler(service string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{service: service, checks: checks}
}

// Live reports that the process is serving requests
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
	})
}

// Ready reports whether every dependency answers
func (h *HealthHandler) Ready(c *gin.Context) {
	status := make(map[string]string, len(h.checks))
	ready := true
	for name, ping := range h.checks {
		if err := ping(c.Request.Context()); err != nil {
			logger.Warn(c.Request.Context(), "readiness check failed", "check", name, "error", err)
			status[name] = "unavailable"
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": h.service,
			"checks":  status,
			"code":    apperror.KindUpstreamFailure,
		})
		return
	}

	response.OK(c, "ready", gin.H{
		"status":  "ok",
		"service": h.service,
		"checks":  status,
	})
}
