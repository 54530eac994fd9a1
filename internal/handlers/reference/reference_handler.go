// internal/handlers/reference/reference_handler.go
package reference

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	refdomain "vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/middleware"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/response"
	refservice "vahanbazaar-service/internal/service/reference"
)

type ReferenceHandler struct {
	refService *refservice.Service
}

func NewReferenceHandler(refService *refservice.Service) *ReferenceHandler {
	return &ReferenceHandler{refService: refService}
}

// Suggest returns typeahead candidates for one cascade stage.
// GET /reference/suggest?category=car&stage=brand&q=mar
func (h *ReferenceHandler) Suggest(c *gin.Context) {
	var req refdomain.SuggestRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, "invalid suggest query", err)
		return
	}

	result, err := h.refService.Suggest(c.Request.Context(), &req)
	if errors.Is(err, xerrors.ErrInvalidInput) {
		response.ValidationError(c, "stage prerequisites not met", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load suggestions", err)
		return
	}

	response.Success(c, http.StatusOK, "suggestions retrieved", result)
}

// Resolve maps a committed name to its ID and writes it into the draft.
// POST /reference/resolve
func (h *ReferenceHandler) Resolve(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	var req refdomain.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid resolve payload", err)
		return
	}

	result, err := h.refService.Resolve(c.Request.Context(), sessionID, &req)
	if errors.Is(err, xerrors.ErrInvalidInput) {
		response.ValidationError(c, "stage prerequisites not met", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to resolve selection", err)
		return
	}

	response.Success(c, http.StatusOK, "selection resolved", result)
}

type commitYearRequest struct {
	Year int `json:"year" binding:"required"`
}

// CommitYear records the chosen manufacture year.
// POST /reference/year
func (h *ReferenceHandler) CommitYear(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	var req commitYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "year is required", err)
		return
	}

	if err := h.refService.CommitYear(c.Request.Context(), sessionID, req.Year); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save year", err)
		return
	}

	response.Success(c, http.StatusOK, "year saved", nil)
}
