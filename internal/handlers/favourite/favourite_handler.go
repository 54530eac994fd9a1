// internal/handlers/favourite/favourite_handler.go
package favourite

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vahanbazaar-service/internal/middleware"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/response"
	favouriteservice "vahanbazaar-service/internal/service/favourite"
)

type FavouriteHandler struct {
	favouriteService *favouriteservice.Service
}

func NewFavouriteHandler(favouriteService *favouriteservice.Service) *FavouriteHandler {
	return &FavouriteHandler{favouriteService: favouriteService}
}

// Add saves an advert for the caller. Idempotent.
// POST /favourites/:listing_id
func (h *FavouriteHandler) Add(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	err := h.favouriteService.Add(c.Request.Context(), identityID, c.Param("listing_id"))
	if errors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "listing not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save listing", err)
		return
	}

	response.Success(c, http.StatusOK, "listing saved", nil)
}

// Remove drops a saved advert.
// DELETE /favourites/:listing_id
func (h *FavouriteHandler) Remove(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	err := h.favouriteService.Remove(c.Request.Context(), identityID, c.Param("listing_id"))
	if errors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "listing was not saved")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to remove saved listing", err)
		return
	}

	response.Success(c, http.StatusOK, "saved listing removed", nil)
}

// List returns the caller's saved adverts.
// GET /favourites
func (h *FavouriteHandler) List(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	favourites, err := h.favouriteService.List(c.Request.Context(), identityID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load saved listings", err)
		return
	}

	response.Success(c, http.StatusOK, "saved listings retrieved", favourites)
}
