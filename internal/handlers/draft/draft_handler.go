// internal/handlers/draft/draft_handler.go
package draft

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	draftdomain "vahanbazaar-service/internal/domain/draft"
	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/middleware"
	"vahanbazaar-service/internal/pkg/response"
	draftservice "vahanbazaar-service/internal/service/draft"
)

type DraftHandler struct {
	draftService *draftservice.Service
}

func NewDraftHandler(draftService *draftservice.Service) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// NewSession hands the client a fresh draft session ID.
// POST /drafts/session
func (h *DraftHandler) NewSession(c *gin.Context) {
	response.Success(c, http.StatusCreated, "draft session created", gin.H{
		"draft_session": ulid.Make().String(),
	})
}

// Restore hydrates the persisted draft for the session.
// GET /drafts
func (h *DraftHandler) Restore(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	d, restored, err := h.draftService.Restore(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to restore draft", err)
		return
	}

	response.Success(c, http.StatusOK, "draft retrieved", gin.H{
		"draft":    d,
		"restored": restored,
	})
}

// SaveVehicle auto-saves the vehicle section.
// PUT /drafts/vehicle
func (h *DraftHandler) SaveVehicle(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	var section draftdomain.VehicleSection
	if err := c.ShouldBindJSON(&section); err != nil {
		response.ValidationError(c, "invalid vehicle payload", err)
		return
	}

	if err := h.draftService.SaveVehicle(c.Request.Context(), sessionID, section); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save draft", err)
		return
	}

	response.Success(c, http.StatusOK, "draft saved", nil)
}

// SaveSeller auto-saves the seller section.
// PUT /drafts/seller
func (h *DraftHandler) SaveSeller(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	var section draftdomain.SellerSection
	if err := c.ShouldBindJSON(&section); err != nil {
		response.ValidationError(c, "invalid seller payload", err)
		return
	}

	if err := h.draftService.SaveSeller(c.Request.Context(), sessionID, section); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save draft", err)
		return
	}

	response.Success(c, http.StatusOK, "draft saved", nil)
}

type setStepRequest struct {
	Step int `json:"step"`
}

// SetStep records form progress.
// PUT /drafts/step
func (h *DraftHandler) SetStep(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	var req setStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid step payload", err)
		return
	}

	if err := h.draftService.SetStep(c.Request.Context(), sessionID, req.Step); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save step", err)
		return
	}

	response.Success(c, http.StatusOK, "step saved", nil)
}

type switchCategoryRequest struct {
	Category reference.VehicleCategory `json:"category" binding:"required"`
}

// SwitchCategory resets the whole draft for the new category.
// POST /drafts/category
func (h *DraftHandler) SwitchCategory(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	var req switchCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "category is required", err)
		return
	}

	if err := h.draftService.SwitchCategory(c.Request.Context(), sessionID, req.Category); err != nil {
		response.Error(c, http.StatusBadRequest, "failed to switch category", err)
		return
	}

	response.Success(c, http.StatusOK, "category switched", nil)
}

// Discard drops the draft entirely.
// DELETE /drafts
func (h *DraftHandler) Discard(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	if err := h.draftService.Discard(c.Request.Context(), sessionID); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to discard draft", err)
		return
	}

	response.Success(c, http.StatusOK, "draft discarded", nil)
}
