package draftstore

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
	"vahanbazaar-service/internal/domain/reference"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, zap.NewNop(), time.Hour), mr
}

func TestSetVehicleMergePreservesExistingFields(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.SetVehicle(ctx, "s1", draft.VehicleSection{
		Category:  reference.CategoryCar,
		BrandName: "Maruti Suzuki",
		BrandID:   4,
	})
	require.NoError(t, err)

	// A later auto-save carrying only the city must not wipe the brand.
	err = store.SetVehicle(ctx, "s1", draft.VehicleSection{City: "Pune"})
	require.NoError(t, err)

	v, err := store.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Maruti Suzuki", v.BrandName)
	assert.Equal(t, int64(4), v.BrandID)
	assert.Equal(t, "Pune", v.City)
}

func TestReplaceVehicleClearsOmittedFields(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.SetVehicle(ctx, "s1", draft.VehicleSection{
		BrandName: "Honda",
		BrandID:   2,
		Year:      2019,
		ModelName: "City",
		ModelID:   9,
	})
	require.NoError(t, err)

	err = store.ReplaceVehicle(ctx, "s1", draft.VehicleSection{
		BrandName: "Honda",
		BrandID:   2,
	})
	require.NoError(t, err)

	v, err := store.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.BrandID)
	assert.Zero(t, v.Year)
	assert.Empty(t, v.ModelName)
	assert.Zero(t, v.ModelID)
}

func TestMalformedSectionReadsAsEmpty(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("draft:s1:vehicle", "{this is not json"))

	v, err := store.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, v.Empty())
}

func TestMissingSectionReadsAsEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	v, err := store.Vehicle(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.True(t, v.Empty())

	s, err := store.Seller(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.True(t, s.Empty())
}

func TestSetPhotosReplacesWholesale(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	err := store.SetPhotos(ctx, "s1", draft.PhotoSection{
		Names: map[string][]string{"Exterior": {"a.jpg"}, "Interior": {"b.jpg"}},
		URLs:  map[string][]string{"Exterior": {"http://x/a"}, "Interior": {"http://x/b"}},
	})
	require.NoError(t, err)

	err = store.SetPhotos(ctx, "s1", draft.PhotoSection{
		Names: map[string][]string{"Exterior": {"c.jpg"}},
		URLs:  map[string][]string{"Exterior": {"http://x/c"}},
	})
	require.NoError(t, err)

	p, err := store.Photos(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c.jpg"}, p.Names["Exterior"])
	assert.NotContains(t, p.Names, "Interior")
}

func TestClearAllRemovesSectionsButKeepsSwitchingGuard(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetVehicle(ctx, "s1", draft.VehicleSection{BrandName: "Tata"}))
	require.NoError(t, store.SetSeller(ctx, "s1", draft.SellerSection{SellerName: "Asha"}))
	require.NoError(t, store.SetStep(ctx, "s1", draft.StepSection{Step: 3}))
	require.NoError(t, store.SetSwitching(ctx, "s1", true))

	require.NoError(t, store.ClearAll(ctx, "s1"))

	v, err := store.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, v.Empty())

	step, err := store.Step(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, step.Step)

	switching, err := store.IsSwitching(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, switching)
}

func TestSwitchingGuardLifecycle(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	switching, err := store.IsSwitching(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, switching)

	require.NoError(t, store.SetSwitching(ctx, "s1", true))
	switching, err = store.IsSwitching(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, switching)

	// Guard auto-expires if the client dies mid-switch.
	mr.FastForward(2 * time.Minute)
	switching, err = store.IsSwitching(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, switching)

	require.NoError(t, store.SetSwitching(ctx, "s1", true))
	require.NoError(t, store.SetSwitching(ctx, "s1", false))
	switching, err = store.IsSwitching(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, switching)
}

func TestSessionsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetVehicle(ctx, "s1", draft.VehicleSection{BrandName: "Tata"}))

	v, err := store.Vehicle(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, v.Empty())
}
