package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/booking"
	"vahanbazaar-service/internal/domain/listing"
	wstypes "vahanbazaar-service/internal/domain/websocket"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

type fakeRepo struct {
	bookings map[string]*booking.Booking
}

func (f *fakeRepo) Create(_ context.Context, b *booking.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) ListByBuyer(_ context.Context, buyerID int64) ([]booking.Booking, error) {
	out := []booking.Booking{}
	for _, b := range f.bookings {
		if b.BuyerIdentityID == buyerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBySeller(_ context.Context, sellerID int64) ([]booking.Booking, error) {
	out := []booking.Booking{}
	for _, b := range f.bookings {
		if b.SellerIdentityID == sellerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status booking.Status) error {
	b, ok := f.bookings[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	b.Status = status
	return nil
}

type fakeListings struct {
	listings map[string]*listing.Listing
}

func (f *fakeListings) FindByID(_ context.Context, id string) (*listing.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return l, nil
}

type fakeNotifier struct {
	createdFor []int64
	updatedFor [][]int64
	statuses   []string
}

func (f *fakeNotifier) NotifyBookingCreated(sellerIdentityID int64, data *wstypes.BookingEventData) {
	f.createdFor = append(f.createdFor, sellerIdentityID)
	f.statuses = append(f.statuses, data.Status)
}

func (f *fakeNotifier) NotifyBookingUpdated(identityIDs []int64, data *wstypes.BookingEventData) {
	f.updatedFor = append(f.updatedFor, identityIDs)
	f.statuses = append(f.statuses, data.Status)
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeListings, *fakeNotifier) {
	t.Helper()

	repo := &fakeRepo{bookings: map[string]*booking.Booking{}}
	listings := &fakeListings{listings: map[string]*listing.Listing{
		"L1": {ID: "L1", SellerIdentityID: 7, Status: listing.StatusActive, City: "Pune"},
		"L2": {ID: "L2", SellerIdentityID: 7, Status: listing.StatusSold},
	}}
	hub := &fakeNotifier{}
	return NewService(repo, listings, hub, zap.NewNop()), repo, listings, hub
}

func tomorrow() time.Time {
	return time.Now().Add(24 * time.Hour)
}

func TestCreateBookingNotifiesSeller(t *testing.T) {
	svc, repo, _, hub := newTestService(t)

	b, err := svc.Create(context.Background(), 3, &booking.CreateRequest{
		ListingID:   "L1",
		ScheduledAt: tomorrow(),
		Notes:       "morning works best",
	})
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, b.Status)
	assert.Equal(t, int64(3), b.BuyerIdentityID)
	assert.Equal(t, int64(7), b.SellerIdentityID)

	_, ok := repo.bookings[b.ID]
	assert.True(t, ok)

	require.Len(t, hub.createdFor, 1)
	assert.Equal(t, int64(7), hub.createdFor[0])
}

func TestCreateBookingRejectsPastSlot(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 3, &booking.CreateRequest{
		ListingID:   "L1",
		ScheduledAt: time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestCreateBookingRejectsInactiveListing(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 3, &booking.CreateRequest{
		ListingID:   "L2",
		ScheduledAt: tomorrow(),
	})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestCreateBookingRejectsSelfBooking(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 7, &booking.CreateRequest{
		ListingID:   "L1",
		ScheduledAt: tomorrow(),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestConfirmOnlyBySeller(t *testing.T) {
	svc, _, _, hub := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, 3, &booking.CreateRequest{ListingID: "L1", ScheduledAt: tomorrow()})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Confirm(ctx, b.ID, 3), xerrors.ErrForbidden)

	require.NoError(t, svc.Confirm(ctx, b.ID, 7))
	require.Len(t, hub.updatedFor, 1)
	assert.ElementsMatch(t, []int64{3, 7}, hub.updatedFor[0])

	// Confirming twice conflicts.
	assert.ErrorIs(t, svc.Confirm(ctx, b.ID, 7), xerrors.ErrConflict)
}

func TestCancelByEitherPartyButNotStrangers(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, 3, &booking.CreateRequest{ListingID: "L1", ScheduledAt: tomorrow()})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, b.ID, 99), xerrors.ErrForbidden)

	require.NoError(t, svc.Cancel(ctx, b.ID, 3))
	assert.Equal(t, booking.StatusCancelled, repo.bookings[b.ID].Status)

	// A cancelled booking cannot be cancelled again.
	assert.ErrorIs(t, svc.Cancel(ctx, b.ID, 7), xerrors.ErrConflict)
}
