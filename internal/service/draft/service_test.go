package draft

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "vahanbazaar-service/internal/domain/draft"
	mediadomain "vahanbazaar-service/internal/domain/media"
	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/service/media"
)

func newTestService(t *testing.T) (*Service, *draftstore.Store, *media.Registry) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := draftstore.NewStore(client, zap.NewNop(), time.Hour)
	collectors := media.NewRegistry()
	return NewService(store, collectors, zap.NewNop()), store, collectors
}

func TestRestoreHydratesSavedDraft(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.SetVehicle(ctx, "s1", domain.VehicleSection{
		Category:  reference.CategoryCar,
		BrandName: "Tata",
	}))
	require.NoError(t, store.SetStep(ctx, "s1", domain.StepSection{Step: 2}))

	d, restored, err := svc.Restore(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, restored)
	assert.Equal(t, "Tata", d.Vehicle.BrandName)
	assert.Equal(t, 2, d.Step.Step)
}

func TestRestoreFreshSessionReportsNothingRestored(t *testing.T) {
	svc, _, _ := newTestService(t)

	d, restored, err := svc.Restore(context.Background(), "fresh")
	require.NoError(t, err)
	assert.False(t, restored)
	assert.True(t, d.Vehicle.Empty())
}

func TestRestoreSuppressedWhileSwitching(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.SetVehicle(ctx, "s1", domain.VehicleSection{BrandName: "Tata"}))
	require.NoError(t, store.SetSwitching(ctx, "s1", true))

	d, restored, err := svc.Restore(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, restored)
	assert.True(t, d.Vehicle.Empty())
}

func TestSaveVehicleSkipsBlankRecord(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.SetVehicle(ctx, "s1", domain.VehicleSection{BrandName: "Tata"}))

	// A blank auto-save on first mount must not touch the stored draft.
	require.NoError(t, svc.SaveVehicle(ctx, "s1", domain.VehicleSection{}))

	v, err := store.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Tata", v.BrandName)
}

func TestSaveSellerSkipsBlankRecord(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.SetSeller(ctx, "s1", domain.SellerSection{SellerName: "Asha"}))
	require.NoError(t, svc.SaveSeller(ctx, "s1", domain.SellerSection{}))

	s, err := store.Seller(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", s.SellerName)
}

func TestSetStepRejectsNegative(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.ErrorIs(t, svc.SetStep(context.Background(), "s1", -1), xerrors.ErrInvalidInput)
	assert.NoError(t, svc.SetStep(context.Background(), "s1", 0))
}

func TestSwitchCategoryClearsEverything(t *testing.T) {
	svc, store, collectors := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.SetVehicle(ctx, "s1", domain.VehicleSection{
		Category:  reference.CategoryCar,
		BrandName: "Tata",
		Year:      2020,
	}))
	require.NoError(t, store.SetSeller(ctx, "s1", domain.SellerSection{SellerName: "Asha"}))
	require.NoError(t, store.SetStep(ctx, "s1", domain.StepSection{Step: 3}))

	collector := collectors.Get("s1", reference.CategoryCar)
	_, _, err := collector.AddFiles("Exterior", []mediadomain.File{
		{Name: "a.jpg", Size: 1, ContentType: "image/jpeg"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.SwitchCategory(ctx, "s1", reference.CategoryBike))

	v, err := store.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, reference.CategoryBike, v.Category)
	assert.Empty(t, v.BrandName)
	assert.Zero(t, v.Year)

	s, err := store.Seller(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, s.Empty())

	step, err := store.Step(ctx, "s1")
	require.NoError(t, err)
	assert.Zero(t, step.Step)

	assert.Zero(t, collector.Count())
	assert.Equal(t, reference.CategoryBike, collector.Category())

	// The guard is dropped once the switch completes.
	switching, err := store.IsSwitching(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, switching)
}

func TestSwitchCategoryRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.SwitchCategory(context.Background(), "s1", reference.VehicleCategory("boat"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestDiscardDropsDraftAndCollector(t *testing.T) {
	svc, store, collectors := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.SetVehicle(ctx, "s1", domain.VehicleSection{BrandName: "Tata"}))
	collectors.Get("s1", reference.CategoryCar)

	require.NoError(t, svc.Discard(ctx, "s1"))

	v, err := store.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, v.Empty())

	_, ok := collectors.Lookup("s1")
	assert.False(t, ok)
}
