// internal/service/booking/service.go
package booking

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/booking"
	"vahanbazaar-service/internal/domain/listing"
	wstypes "vahanbazaar-service/internal/domain/websocket"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

// Repository is the booking persistence surface.
type Repository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id string) (*booking.Booking, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]booking.Booking, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]booking.Booking, error)
	UpdateStatus(ctx context.Context, id string, status booking.Status) error
}

// ListingFinder resolves the advert a booking targets.
type ListingFinder interface {
	FindByID(ctx context.Context, id string) (*listing.Listing, error)
}

// Notifier pushes booking events to the parties over the hub.
type Notifier interface {
	NotifyBookingCreated(sellerIdentityID int64, data *wstypes.BookingEventData)
	NotifyBookingUpdated(identityIDs []int64, data *wstypes.BookingEventData)
}

// Service manages test-drive appointments.
type Service struct {
	repo     Repository
	listings ListingFinder
	hub      Notifier
	logger   *zap.Logger
}

func NewService(repo Repository, listings ListingFinder, hub Notifier, logger *zap.Logger) *Service {
	return &Service{repo: repo, listings: listings, hub: hub, logger: logger}
}

// Create books a test drive on an active advert and notifies the seller.
func (s *Service) Create(ctx context.Context, buyerID int64, req *booking.CreateRequest) (*booking.Booking, error) {
	if req.ScheduledAt.Before(time.Now()) {
		return nil, xerrors.ErrInvalidInput
	}

	l, err := s.listings.FindByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Status != listing.StatusActive {
		return nil, xerrors.ErrConflict
	}
	if l.SellerIdentityID == buyerID {
		return nil, xerrors.ErrInvalidInput
	}

	b := &booking.Booking{
		ID:               ulid.Make().String(),
		ListingID:        l.ID,
		BuyerIdentityID:  buyerID,
		SellerIdentityID: l.SellerIdentityID,
		ScheduledAt:      req.ScheduledAt,
		Notes:            req.Notes,
		Status:           booking.StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.hub.NotifyBookingCreated(b.SellerIdentityID, &wstypes.BookingEventData{
		BookingID:   b.ID,
		ListingID:   b.ListingID,
		ScheduledAt: b.ScheduledAt,
		Status:      string(b.Status),
	})

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("listing_id", b.ListingID),
	)
	return b, nil
}

// Mine returns the bookings a user made as a buyer.
func (s *Service) Mine(ctx context.Context, buyerID int64) ([]booking.Booking, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

// Incoming returns the bookings against a user's adverts.
func (s *Service) Incoming(ctx context.Context, sellerID int64) ([]booking.Booking, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// Confirm lets the seller accept a pending booking.
func (s *Service) Confirm(ctx context.Context, id string, sellerID int64) error {
	return s.transition(ctx, id, sellerID, booking.StatusPending, booking.StatusConfirmed, sellerSide)
}

// Cancel lets either party cancel a pending or confirmed booking.
func (s *Service) Cancel(ctx context.Context, id string, identityID int64) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b.BuyerIdentityID != identityID && b.SellerIdentityID != identityID {
		return xerrors.ErrForbidden
	}
	if b.Status != booking.StatusPending && b.Status != booking.StatusConfirmed {
		return xerrors.ErrConflict
	}

	if err := s.repo.UpdateStatus(ctx, id, booking.StatusCancelled); err != nil {
		return err
	}

	s.notifyBoth(b, booking.StatusCancelled)
	return nil
}

type side int

const (
	sellerSide side = iota
	buyerSide
)

func (s *Service) transition(ctx context.Context, id string, identityID int64, from, to booking.Status, who side) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	owner := b.SellerIdentityID
	if who == buyerSide {
		owner = b.BuyerIdentityID
	}
	if owner != identityID {
		return xerrors.ErrForbidden
	}
	if b.Status != from {
		return xerrors.ErrConflict
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return err
	}

	s.notifyBoth(b, to)
	return nil
}

func (s *Service) notifyBoth(b *booking.Booking, status booking.Status) {
	s.hub.NotifyBookingUpdated(
		[]int64{b.BuyerIdentityID, b.SellerIdentityID},
		&wstypes.BookingEventData{
			BookingID:   b.ID,
			ListingID:   b.ListingID,
			ScheduledAt: b.ScheduledAt,
			Status:      string(status),
		},
	)
}
