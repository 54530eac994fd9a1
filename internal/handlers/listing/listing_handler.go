// internal/handlers/listing/listing_handler.go
package listing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	listingdomain "vahanbazaar-service/internal/domain/listing"
	"vahanbazaar-service/internal/middleware"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/response"
	listingservice "vahanbazaar-service/internal/service/listing"
)

type ListingHandler struct {
	listingService *listingservice.Service
}

func NewListingHandler(listingService *listingservice.Service) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// Publish turns the caller's completed draft into a live advert.
// POST /listings
func (h *ListingHandler) Publish(c *gin.Context) {
	sellerID := middleware.MustGetIdentityID(c)
	sessionID := middleware.GetDraftSession(c)
	if sessionID == "" {
		response.ValidationError(c, "draft session is required", nil)
		return
	}

	l, err := h.listingService.Publish(c.Request.Context(), sessionID, sellerID)
	if errors.Is(err, xerrors.ErrInvalidInput) {
		response.Error(c, http.StatusUnprocessableEntity, "draft is incomplete", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to publish listing", err)
		return
	}

	response.Success(c, http.StatusCreated, "listing published", l)
}

// Search runs a filtered, paginated browse query.
// GET /listings
func (h *ListingHandler) Search(c *gin.Context) {
	var filters listingdomain.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid search query", err)
		return
	}

	result, err := h.listingService.Search(c.Request.Context(), &filters)
	if errors.Is(err, xerrors.ErrInvalidInput) {
		response.ValidationError(c, "unknown category", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to search listings", err)
		return
	}

	response.Success(c, http.StatusOK, "listings retrieved", result)
}

// Get returns one advert.
// GET /listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.listingService.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "listing not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load listing", err)
		return
	}

	response.Success(c, http.StatusOK, "listing retrieved", l)
}

// Mine returns the caller's own adverts.
// GET /listings/mine
func (h *ListingHandler) Mine(c *gin.Context) {
	sellerID := middleware.MustGetIdentityID(c)

	listings, err := h.listingService.Mine(c.Request.Context(), sellerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load listings", err)
		return
	}

	response.Success(c, http.StatusOK, "listings retrieved", listings)
}

// MarkSold flips the caller's advert to sold.
// PUT /listings/:id/sold
func (h *ListingHandler) MarkSold(c *gin.Context) {
	sellerID := middleware.MustGetIdentityID(c)

	err := h.listingService.MarkSold(c.Request.Context(), c.Param("id"), sellerID)
	if errors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "listing not found")
		return
	}
	if errors.Is(err, xerrors.ErrForbidden) {
		response.Error(c, http.StatusForbidden, "not your listing", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to update listing", err)
		return
	}

	response.Success(c, http.StatusOK, "listing marked sold", nil)
}

// Remove takes the caller's advert off the marketplace.
// DELETE /listings/:id
func (h *ListingHandler) Remove(c *gin.Context) {
	sellerID := middleware.MustGetIdentityID(c)

	err := h.listingService.Remove(c.Request.Context(), c.Param("id"), sellerID)
	if errors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "listing not found")
		return
	}
	if errors.Is(err, xerrors.ErrForbidden) {
		response.Error(c, http.StatusForbidden, "not your listing", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to remove listing", err)
		return
	}

	response.Success(c, http.StatusOK, "listing removed", nil)
}
