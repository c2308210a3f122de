package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"procura/internal/classify"
	"procura/internal/doctext"
	"procura/internal/domain"
	"procura/internal/extraction"
	"procura/internal/port"
)

// OfferHandler handles offer parsing and commodity suggestion endpoints.
type OfferHandler struct {
	extractor *extraction.Service
	classify  *classify.Service
	groups    port.CommodityGroupRepository
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(extractor *extraction.Service, classifier *classify.Service, groups port.CommodityGroupRepository) *OfferHandler {
	return &OfferHandler{extractor: extractor, classify: classifier, groups: groups}
}

// parseOfferRequest is the JSON body variant of the parse endpoint.
type parseOfferRequest struct {
	DocumentText string `json:"document_text" binding:"required"`
}

// parseOfferResponse bundles the extracted offer with document and
// extraction metadata.
type parseOfferResponse struct {
	Offer            *extraction.ParsedVendorOffer `json:"offer"`
	Extraction       *extraction.Metadata          `json:"extraction"`
	DocumentMetadata *doctext.DocumentMetadata     `json:"document_metadata,omitempty"`
}

// ParseOffer handles POST /api/v1/offers/parse
// Accepts either a multipart upload ("file") or a JSON body with
// document_text.
func (h *OfferHandler) ParseOffer(c *gin.Context) {
	if _, ok := extractActor(c); !ok {
		return
	}

	documentText, docMeta, ok := h.readDocument(c)
	if !ok {
		return
	}
	if documentText == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "document contains no extractable text")
		return
	}

	offer, meta, err := h.extractor.ParseOffer(c.Request.Context(), documentText)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, parseOfferResponse{
		Offer:            offer,
		Extraction:       meta,
		DocumentMetadata: docMeta,
	})
}

// readDocument obtains the offer text from a multipart file or a JSON
// body. PDF metadata rides along when the upload is a PDF.
func (h *OfferHandler) readDocument(c *gin.Context) (string, *doctext.DocumentMetadata, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// No file upload: fall back to the JSON body.
		var req parseOfferRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "provide a file upload or a document_text body")
			return "", nil, false
		}
		return req.DocumentText, nil, true
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cannot open uploaded file")
		return "", nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cannot read uploaded file")
		return "", nil, false
	}

	text, err := doctext.FromBytesWithHint(data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		HandleError(c, err)
		return "", nil, false
	}

	var docMeta *doctext.DocumentMetadata
	if meta, metaErr := doctext.Metadata(data); metaErr == nil {
		docMeta = meta
	}
	return text, docMeta, true
}

// suggestCommodityRequest is the body of the suggestion endpoint.
type suggestCommodityRequest struct {
	Title      string   `json:"title" binding:"required"`
	Lines      []string `json:"lines"`
	VendorName string   `json:"vendor_name"`
}

// suggestCommodityResponse pairs the suggestion with the stored catalog
// row so clients can link the request directly.
type suggestCommodityResponse struct {
	Suggestion     *classify.Suggestion   `json:"suggestion"`
	CommodityGroup *domain.CommodityGroup `json:"commodity_group,omitempty"`
}

// SuggestCommodity handles POST /api/v1/offers/suggest-commodity
func (h *OfferHandler) SuggestCommodity(c *gin.Context) {
	if _, ok := extractActor(c); !ok {
		return
	}

	var req suggestCommodityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	suggestion := h.classify.Suggest(c.Request.Context(), classify.SuggestInput{
		Title:      req.Title,
		Lines:      req.Lines,
		VendorName: req.VendorName,
	})

	var group *domain.CommodityGroup
	if g, err := h.groups.GetByCategory(c.Request.Context(), suggestion.Category); err == nil {
		group = g
	}

	RespondOK(c, suggestCommodityResponse{
		Suggestion:     suggestion,
		CommodityGroup: group,
	})
}
