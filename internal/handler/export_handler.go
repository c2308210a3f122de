package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"procura/internal/domain"
	"procura/internal/port"
	"procura/internal/service"
	"procura/internal/xlsxexport"
)

// exportBatchSize bounds how many requests one export page fetches.
const exportBatchSize = 500

// ExportHandler streams procurement requests as an XLSX workbook.
type ExportHandler struct {
	requestService service.RequestService
	groups         port.CommodityGroupRepository
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(requestService service.RequestService, groups port.CommodityGroupRepository) *ExportHandler {
	return &ExportHandler{requestService: requestService, groups: groups}
}

// Export handles GET /api/v1/requests/export
func (h *ExportHandler) Export(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	status := domain.RequestStatus(c.Query("status"))
	if status != "" && !domain.IsValidStatus(status) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown status filter")
		return
	}

	groupNames, err := h.loadGroupNames(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	w, err := xlsxexport.NewWriter()
	if err != nil {
		HandleError(c, err)
		return
	}

	offset := 0
	for {
		batch, total, err := h.requestService.List(c.Request.Context(), actor, service.ListRequestsInput{
			Status:     status,
			Department: c.Query("department"),
			Offset:     offset,
			Limit:      exportBatchSize,
		})
		if err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteRequests(batch, groupNames); err != nil {
			HandleError(c, err)
			return
		}
		offset += len(batch)
		if len(batch) == 0 || offset >= total {
			break
		}
	}

	filename := xlsxexport.BuildFilename("procurement_requests")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := w.WriteTo(c.Writer); err != nil {
		// Headers are already out; nothing sensible left to send.
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] export write failed: %v", requestID, err)
	}
}

func (h *ExportHandler) loadGroupNames(c *gin.Context) (map[string]string, error) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(groups))
	for _, g := range groups {
		names[g.ID.String()] = fmt.Sprintf("%s %s", g.Category, g.Name)
	}
	return names, nil
}
