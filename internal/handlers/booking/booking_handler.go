// internal/handlers/booking/booking_handler.go
package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bookingdomain "vahanbazaar-service/internal/domain/booking"
	"vahanbazaar-service/internal/middleware"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/pkg/response"
	bookingservice "vahanbazaar-service/internal/service/booking"
)

type BookingHandler struct {
	bookingService *bookingservice.Service
}

func NewBookingHandler(bookingService *bookingservice.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create books a test drive on an advert.
// POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	buyerID := middleware.MustGetIdentityID(c)

	var req bookingdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "listing_id and scheduled_at are required", err)
		return
	}

	b, err := h.bookingService.Create(c.Request.Context(), buyerID, &req)
	if errors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "listing not found")
		return
	}
	if errors.Is(err, xerrors.ErrConflict) {
		response.Error(c, http.StatusConflict, "listing is no longer available", err)
		return
	}
	if errors.Is(err, xerrors.ErrInvalidInput) {
		response.ValidationError(c, "invalid booking request", err)
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create booking", err)
		return
	}

	response.Success(c, http.StatusCreated, "booking created", b)
}

// Mine returns bookings the caller made as a buyer.
// GET /bookings
func (h *BookingHandler) Mine(c *gin.Context) {
	buyerID := middleware.MustGetIdentityID(c)

	bookings, err := h.bookingService.Mine(c.Request.Context(), buyerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load bookings", err)
		return
	}

	response.Success(c, http.StatusOK, "bookings retrieved", bookings)
}

// Incoming returns bookings against the caller's adverts.
// GET /bookings/incoming
func (h *BookingHandler) Incoming(c *gin.Context) {
	sellerID := middleware.MustGetIdentityID(c)

	bookings, err := h.bookingService.Incoming(c.Request.Context(), sellerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load bookings", err)
		return
	}

	response.Success(c, http.StatusOK, "bookings retrieved", bookings)
}

// Confirm lets the seller accept a pending booking.
// PUT /bookings/:id/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	sellerID := middleware.MustGetIdentityID(c)

	err := h.bookingService.Confirm(c.Request.Context(), c.Param("id"), sellerID)
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "booking confirmed", nil)
}

// Cancel lets either party cancel a booking.
// PUT /bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	err := h.bookingService.Cancel(c.Request.Context(), c.Param("id"), identityID)
	if err != nil {
		h.writeTransitionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "booking cancelled", nil)
}

func (h *BookingHandler) writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "booking not found")
	case errors.Is(err, xerrors.ErrForbidden):
		response.Error(c, http.StatusForbidden, "not your booking", err)
	case errors.Is(err, xerrors.ErrConflict):
		response.Error(c, http.StatusConflict, "booking is not in a state that allows this", err)
	default:
		response.Error(c, http.StatusInternalServerError, "failed to update booking", err)
	}
}
