// internal/handlers/media/media_handler.go
package media

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mediadomain "vahanbazaar-service/internal/domain/media"
	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/middleware"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/response"
	mediaservice "vahanbazaar-service/internal/service/media"
)

type MediaHandler struct {
	registry *mediaservice.Registry
	drafts   *draftstore.Store
}

func NewMediaHandler(registry *mediaservice.Registry, drafts *draftstore.Store) *MediaHandler {
	return &MediaHandler{registry: registry, drafts: drafts}
}

// collector loads the session's collector, deriving the bucket set from
// the draft's stored category. A draft with no category yet gets the car
// bucket set.
func (h *MediaHandler) collector(c *gin.Context, sessionID string) (*mediaservice.Collector, error) {
	vehicle, err := h.drafts.Vehicle(c.Request.Context(), sessionID)
	if err != nil {
		return nil, err
	}
	category := vehicle.Category
	if category == "" {
		category = reference.CategoryCar
	}
	return h.registry.Get(sessionID, category), nil
}

// ListBuckets returns the bucket names and staged counts for the session.
// GET /drafts/media
func (h *MediaHandler) ListBuckets(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	collector, err := h.collector(c, sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load staged media", err)
		return
	}

	buckets := []gin.H{}
	for _, name := range collector.Buckets() {
		files := collector.Files(name)
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}
		buckets = append(buckets, gin.H{
			"name":  name,
			"kind":  mediadomain.KindOf(name),
			"files": names,
		})
	}

	response.Success(c, http.StatusOK, "staged media retrieved", gin.H{
		"category": collector.Category(),
		"buckets":  buckets,
	})
}

// AddFiles stages a multipart batch into one bucket.
// POST /drafts/media/:bucket
func (h *MediaHandler) AddFiles(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}
	bucket := c.Param("bucket")

	form, err := c.MultipartForm()
	if err != nil {
		response.ValidationError(c, "invalid multipart form", err)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		response.ValidationError(c, "no files in request", nil)
		return
	}

	files := make([]mediadomain.File, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "failed to read file", err)
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "failed to read file", err)
			return
		}

		files = append(files, mediadomain.File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	collector, err := h.collector(c, sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load staged media", err)
		return
	}

	accepted, rejected, err := collector.AddFiles(bucket, files)
	if errors.Is(err, xerrors.ErrInvalidInput) {
		response.ValidationError(c, "unknown bucket", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to stage files", err)
		return
	}

	acceptedNames := make([]string, 0, len(accepted))
	for _, f := range accepted {
		acceptedNames = append(acceptedNames, f.Name)
	}

	response.Success(c, http.StatusOK, "files staged", gin.H{
		"accepted": acceptedNames,
		"rejected": rejected,
	})
}

// RemoveFile drops one staged file.
// DELETE /drafts/media/:bucket/:index
func (h *MediaHandler) RemoveFile(c *gin.Context) {
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}
	bucket := c.Param("bucket")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.ValidationError(c, "invalid file index", err)
		return
	}

	collector, err := h.collector(c, sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load staged media", err)
		return
	}

	if err := collector.RemoveFile(bucket, index); err != nil {
		response.ValidationError(c, "no staged file at that position", err)
		return
	}

	response.Success(c, http.StatusOK, "file removed", nil)
}
