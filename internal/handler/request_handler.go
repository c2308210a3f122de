package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/domain"
	"procura/internal/service"
)

// RequestHandler handles procurement request endpoints.
type RequestHandler struct {
	requestService service.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// Create handles POST /api/v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	req, err := h.requestService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, req)
}

// List handles GET /api/v1/requests
func (h *RequestHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	input := service.ListRequestsInput{
		Status:     domain.RequestStatus(c.Query("status")),
		Department: c.Query("department"),
		Offset:     offset,
		Limit:      limit,
	}
	if input.Status != "" && !domain.IsValidStatus(input.Status) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown status filter")
		return
	}

	requests, total, err := h.requestService.List(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, requests, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/requests/:id
func (h *RequestHandler) GetByID(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	req, err := h.requestService.Get(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, req)
}

// Update handles PUT /api/v1/requests/:id
func (h *RequestHandler) Update(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	var input service.UpdateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	req, err := h.requestService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, req)
}

// ChangeStatus handles POST /api/v1/requests/:id/status
func (h *RequestHandler) ChangeStatus(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	var input service.ChangeStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	req, err := h.requestService.ChangeStatus(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, req)
}

// History handles GET /api/v1/requests/:id/history
func (h *RequestHandler) History(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	history, err := h.requestService.History(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, history)
}

// Delete handles DELETE /api/v1/requests/:id
func (h *RequestHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	if err := h.requestService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "request deleted"})
}
