package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"procura/internal/service"
)

// AttachmentHandler handles offer attachment endpoints.
type AttachmentHandler struct {
	attachmentService service.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload handles POST /api/v1/requests/:id/attachments
func (h *AttachmentHandler) Upload(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file form field is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cannot open uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cannot read uploaded file")
		return
	}

	att, err := h.attachmentService.Upload(c.Request.Context(), actor, requestID, service.UploadAttachmentInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, att)
}

// List handles GET /api/v1/requests/:id/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return
	}

	atts, err := h.attachmentService.List(c.Request.Context(), actor, requestID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, atts)
}

// Download handles GET /api/v1/requests/:id/attachments/:attachmentId
func (h *AttachmentHandler) Download(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	requestID, attachmentID, ok := parseAttachmentIDs(c)
	if !ok {
		return
	}

	dl, err := h.attachmentService.Download(c.Request.Context(), actor, requestID, attachmentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, dl)
}

// Delete handles DELETE /api/v1/requests/:id/attachments/:attachmentId
func (h *AttachmentHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	requestID, attachmentID, ok := parseAttachmentIDs(c)
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), actor, requestID, attachmentID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "attachment deleted"})
}

func parseAttachmentIDs(c *gin.Context) (requestID, attachmentID uuid.UUID, ok bool) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request id")
		return uuid.Nil, uuid.Nil, false
	}
	attachmentID, err = uuid.Parse(c.Param("attachmentId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid attachment id")
		return uuid.Nil, uuid.Nil, false
	}
	return requestID, attachmentID, true
}
