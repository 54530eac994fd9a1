package listing

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/draft"
	"vahanbazaar-service/internal/domain/listing"
	"vahanbazaar-service/internal/domain/reference"
	wstypes "vahanbazaar-service/internal/domain/websocket"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

type fakeRepo struct {
	listings map[string]*listing.Listing
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{listings: map[string]*listing.Listing{}}
}

func (f *fakeRepo) Create(_ context.Context, l *listing.Listing) error {
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	f.listings[l.ID] = l
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*listing.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return l, nil
}

func (f *fakeRepo) List(_ context.Context, filters *listing.ListFilters) ([]listing.Listing, int64, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	out := []listing.Listing{}
	for _, l := range f.listings {
		if l.Status == listing.StatusActive {
			out = append(out, *l)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) ListBySeller(_ context.Context, sellerID int64) ([]listing.Listing, error) {
	out := []listing.Listing{}
	for _, l := range f.listings {
		if l.SellerIdentityID == sellerID && l.Status != listing.StatusRemoved {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status listing.Status) error {
	l, ok := f.listings[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	l.Status = status
	return nil
}

type fakeBroadcaster struct {
	created []*wstypes.ListingEventData
	sold    []*wstypes.ListingEventData
}

func (f *fakeBroadcaster) BroadcastListingCreated(data *wstypes.ListingEventData) {
	f.created = append(f.created, data)
}

func (f *fakeBroadcaster) BroadcastListingSold(data *wstypes.ListingEventData) {
	f.sold = append(f.sold, data)
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *draftstore.Store, *fakeBroadcaster) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	drafts := draftstore.NewStore(client, zap.NewNop(), time.Hour)
	repo := newFakeRepo()
	hub := &fakeBroadcaster{}
	return NewService(repo, drafts, hub, zap.NewNop()), repo, drafts, hub
}

func seedCompleteDraft(t *testing.T, drafts *draftstore.Store, sessionID string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, drafts.SetVehicle(ctx, sessionID, draft.VehicleSection{
		Category:           reference.CategoryCar,
		BrandName:          "Maruti Suzuki",
		BrandID:            1,
		Year:               2021,
		ModelName:          "Swift",
		ModelID:            10,
		VariantName:        "VXi",
		City:               "Pune",
		DistanceDriven:     42000,
		DistanceUnitChoice: "km",
		OwnerCount:         1,
		FuelType:           "petrol",
		TransmissionType:   "manual",
	}))
	require.NoError(t, drafts.SetSeller(ctx, sessionID, draft.SellerSection{
		SellerName:    "Asha",
		AskingPrice:   450000,
		ContactNumber: "9876543210",
		SellerRole:    "owner",
	}))
	require.NoError(t, drafts.SetPhotos(ctx, sessionID, draft.PhotoSection{
		Names: map[string][]string{
			"Exterior":   {"front.jpg"},
			"Interior":   {"dash.jpg"},
			"Walkaround": {"walk.mp4"},
		},
		URLs: map[string][]string{
			"Exterior":   {"http://cdn/front.jpg"},
			"Interior":   {"http://cdn/dash.jpg"},
			"Walkaround": {"http://cdn/walk.mp4"},
		},
	}))
}

func TestPublishCreatesActiveListingFromDraft(t *testing.T) {
	svc, repo, drafts, hub := newTestService(t)
	ctx := context.Background()
	seedCompleteDraft(t, drafts, "s1")

	l, err := svc.Publish(ctx, "s1", 7)
	require.NoError(t, err)
	require.NotEmpty(t, l.ID)
	assert.Equal(t, int64(7), l.SellerIdentityID)
	assert.Equal(t, listing.StatusActive, l.Status)
	assert.Equal(t, "Maruti Suzuki", l.BrandName)
	assert.Equal(t, int64(450000), l.AskingPrice)

	// The walkaround video goes to its own column; photos keep bucket order.
	assert.Equal(t, "http://cdn/walk.mp4", l.VideoURL)
	assert.Equal(t, []string{"http://cdn/front.jpg", "http://cdn/dash.jpg"}, []string(l.PhotoURLs))

	stored, err := repo.FindByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, stored.ID)

	require.Len(t, hub.created, 1)
	assert.Equal(t, l.ID, hub.created[0].ListingID)
	assert.Equal(t, "Pune", hub.created[0].City)

	// The draft is gone once the advert is live.
	v, err := drafts.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, v.Empty())
}

func TestPublishRejectsIncompleteDraft(t *testing.T) {
	svc, _, drafts, hub := newTestService(t)
	ctx := context.Background()

	require.NoError(t, drafts.SetVehicle(ctx, "s1", draft.VehicleSection{
		Category:  reference.CategoryCar,
		BrandName: "Tata",
	}))

	_, err := svc.Publish(ctx, "s1", 7)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Empty(t, hub.created)
}

func TestMarkSoldRequiresOwnership(t *testing.T) {
	svc, _, drafts, hub := newTestService(t)
	ctx := context.Background()
	seedCompleteDraft(t, drafts, "s1")

	l, err := svc.Publish(ctx, "s1", 7)
	require.NoError(t, err)

	err = svc.MarkSold(ctx, l.ID, 99)
	assert.ErrorIs(t, err, xerrors.ErrForbidden)
	assert.Empty(t, hub.sold)

	require.NoError(t, svc.MarkSold(ctx, l.ID, 7))
	require.Len(t, hub.sold, 1)
	assert.Equal(t, l.ID, hub.sold[0].ListingID)

	stored, err := svc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.StatusSold, stored.Status)
}

func TestRemoveUnknownListing(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.Remove(context.Background(), "no-such-id", 7)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSearchRejectsUnknownCategory(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Search(context.Background(), &listing.ListFilters{
		Category: reference.VehicleCategory("boat"),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestSearchPaginates(t *testing.T) {
	svc, _, drafts, _ := newTestService(t)
	ctx := context.Background()

	seedCompleteDraft(t, drafts, "s1")
	_, err := svc.Publish(ctx, "s1", 7)
	require.NoError(t, err)

	resp, err := svc.Search(ctx, &listing.ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Listings, 1)
}
