package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// Beyond a plain ping it queries the commodity-group table, so an
// unmigrated schema fails readiness before the first real request does.
// A zero count is still ready: classification falls back to the builtin
// catalog.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}

	var groups int
	if err := h.db.GetContext(c.Request.Context(), &groups, "SELECT COUNT(*) FROM commodity_groups"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "schema not migrated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "commodity_groups": groups})
}
