package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tradelink/backend/internal/infrastructure/persistence"
	"github.com/tradelink/backend/internal/interfaces/http/dto"
)

// SystemHandler exposes health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now()}
}

// Health handles GET /health. Reports degraded with 503 when the database
// does not answer a ping.
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK
	checks := map[string]string{"database": "ok"}

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
		checks["database"] = "unreachable"
	}

	c.JSON(httpStatus, dto.NewSuccessResponse(gin.H{
		"status":  status,
		"uptime":  time.Since(h.startedAt).String(),
		"checks":  checks,
		"version": "1.0.0",
	}))
}
