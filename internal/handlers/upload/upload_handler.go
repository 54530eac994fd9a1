// internal/handlers/upload/upload_handler.go
package upload

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/middleware"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/response"
	mediaservice "vahanbazaar-service/internal/service/media"
	uploadservice "vahanbazaar-service/internal/service/upload"
)

type UploadHandler struct {
	orchestrator *uploadservice.Orchestrator
	signer       uploadservice.DestinationSigner
	registry     *mediaservice.Registry
	drafts       *draftstore.Store
}

func NewUploadHandler(
	orchestrator *uploadservice.Orchestrator,
	signer uploadservice.DestinationSigner,
	registry *mediaservice.Registry,
	drafts *draftstore.Store,
) *UploadHandler {
	return &UploadHandler{
		orchestrator: orchestrator,
		signer:       signer,
		registry:     registry,
		drafts:       drafts,
	}
}

// UploadBatch pushes everything staged for the session to object storage.
// POST /drafts/uploads
func (h *UploadHandler) UploadBatch(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	collector, ok := h.registry.Lookup(sessionID)
	if !ok || collector.Count() == 0 {
		response.ValidationError(c, "please add at least one photo before uploading", xerrors.ErrNoFiles)
		return
	}

	vehicle, err := h.drafts.Vehicle(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load draft", err)
		return
	}
	category := vehicle.Category
	if category == "" {
		category = reference.CategoryCar
	}

	results, err := h.orchestrator.UploadAll(c.Request.Context(), sessionID, category, collector.All())
	if errors.Is(err, xerrors.ErrNoFiles) {
		response.ValidationError(c, "please add at least one photo before uploading", err)
		return
	}
	if err != nil {
		// Per-file outcomes still go back so the client can show which
		// files need a retry.
		response.Error(c, http.StatusBadGateway, "some files failed to upload", err, gin.H{
			"results": results,
		})
		return
	}

	response.Success(c, http.StatusOK, "all files uploaded", gin.H{"results": results})
}

type signRequest struct {
	FolderType string `json:"folderType" binding:"required"`
	Category   string `json:"category" binding:"required"`
	Section    string `json:"section" binding:"required"`
	Filename   string `json:"filename" binding:"required"`
}

// Sign mints a presigned PUT destination for one object.
// POST /uploads/sign
func (h *UploadHandler) Sign(c *gin.Context) {
	var req signRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "folderType, category, section and filename are required", err)
		return
	}

	objectName := fmt.Sprintf("%s/%s/%s/%d_%s",
		req.FolderType, req.Category, req.Section,
		time.Now().UnixMilli(), req.Filename,
	)

	uploadURL, err := h.signer.SignPut(c.Request.Context(), objectName)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to sign upload", err)
		return
	}

	response.Success(c, http.StatusOK, "upload destination signed", gin.H{
		"uploadURL": uploadURL,
	})
}
