package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/port"
)

// CommodityGroupHandler handles commodity-group catalog endpoints.
type CommodityGroupHandler struct {
	groups port.CommodityGroupRepository
}

// NewCommodityGroupHandler creates a new CommodityGroupHandler.
func NewCommodityGroupHandler(groups port.CommodityGroupRepository) *CommodityGroupHandler {
	return &CommodityGroupHandler{groups: groups}
}

// List handles GET /api/v1/commodity-groups
func (h *CommodityGroupHandler) List(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, groups)
}

// GetByID handles GET /api/v1/commodity-groups/:id
func (h *CommodityGroupHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid commodity group id")
		return
	}

	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, group)
}
