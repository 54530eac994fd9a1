package submission

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
	"vahanbazaar-service/internal/pkg/draftstore"
)

type fakeInterrupter struct {
	sessionID string
	step      int
	reason    string
	calls     int
}

func (f *fakeInterrupter) BroadcastSignInRequired(draftSessionID string, step int, reason string) {
	f.sessionID = draftSessionID
	f.step = step
	f.reason = reason
	f.calls++
}

func newTestGate(t *testing.T) (*Gate, *draftstore.Store, *fakeInterrupter) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	drafts := draftstore.NewStore(client, zap.NewNop(), time.Hour)
	interrupter := &fakeInterrupter{}
	return NewGate(drafts, interrupter, zap.NewNop()), drafts, interrupter
}

func completeCarVehicle() draft.VehicleSection {
	return draft.VehicleSection{
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
	}
}

func completeSeller() draft.SellerSection {
	return draft.SellerSection{
		SellerName:    "Asha",
		AskingPrice:   450000,
		ContactNumber: "9876543210",
		SellerRole:    "owner",
	}
}

func TestValidateEmptyDraftListsEveryFieldInFormOrder(t *testing.T) {
	missing := Validate(draft.VehicleSection{Category: reference.CategoryCar}, draft.SellerSection{})

	assert.Equal(t, []string{
		"Brand", "Year", "Model", "Variant", "City", "Distance driven",
		"Seller name", "Asking price", "Contact number", "Seller role",
		"Owner count", "Fuel type", "Transmission",
	}, missing)
}

func TestValidateBikeSkipsTransmission(t *testing.T) {
	v := completeCarVehicle()
	v.Category = reference.CategoryBike
	v.TransmissionType = ""

	assert.Empty(t, Validate(v, completeSeller()))
}

func TestValidateDistanceNeedsValueAndUnit(t *testing.T) {
	v := completeCarVehicle()
	v.DistanceUnitChoice = ""

	missing := Validate(v, completeSeller())
	assert.Equal(t, []string{"Distance driven"}, missing)
}

func TestNotice(t *testing.T) {
	assert.Empty(t, Notice(nil))
	assert.Equal(t, "Please fill in: Brand, Year", Notice([]string{"Brand", "Year"}))
}

func TestSubmitBlocksOnIncompleteDraft(t *testing.T) {
	gate, drafts, interrupter := newTestGate(t)
	ctx := context.Background()

	v := completeCarVehicle()
	v.City = ""
	require.NoError(t, drafts.SetVehicle(ctx, "s1", v))
	require.NoError(t, drafts.SetSeller(ctx, "s1", completeSeller()))

	outcome, err := gate.Submit(ctx, "s1", &SubmitRequest{}, false)
	require.NoError(t, err)
	assert.True(t, outcome.Blocked())
	assert.Equal(t, []string{"City"}, outcome.Missing)
	assert.Equal(t, "Please fill in: City", outcome.Notice)
	assert.Zero(t, interrupter.calls)
}

func TestSubmitInterruptsUnauthenticatedSession(t *testing.T) {
	gate, drafts, interrupter := newTestGate(t)
	ctx := context.Background()

	require.NoError(t, drafts.SetVehicle(ctx, "s1", completeCarVehicle()))
	require.NoError(t, drafts.SetSeller(ctx, "s1", completeSeller()))
	require.NoError(t, drafts.SetStep(ctx, "s1", draft.StepSection{Step: 4}))

	outcome, err := gate.Submit(ctx, "s1", &SubmitRequest{}, false)
	require.NoError(t, err)
	assert.False(t, outcome.Blocked())
	assert.True(t, outcome.SignInRequired)
	assert.Equal(t, 4, outcome.Step)

	assert.Equal(t, 1, interrupter.calls)
	assert.Equal(t, "s1", interrupter.sessionID)
	assert.Equal(t, 4, interrupter.step)

	// The step is untouched so the flow resumes where it paused.
	step, err := drafts.Step(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, step.Step)
}

func TestSubmitAdvancesAuthenticatedSession(t *testing.T) {
	gate, drafts, interrupter := newTestGate(t)
	ctx := context.Background()

	require.NoError(t, drafts.SetVehicle(ctx, "s1", completeCarVehicle()))
	require.NoError(t, drafts.SetSeller(ctx, "s1", completeSeller()))
	require.NoError(t, drafts.SetStep(ctx, "s1", draft.StepSection{Step: 4}))

	outcome, err := gate.Submit(ctx, "s1", &SubmitRequest{}, true)
	require.NoError(t, err)
	assert.False(t, outcome.SignInRequired)
	assert.Equal(t, 5, outcome.Step)
	assert.Zero(t, interrupter.calls)

	step, err := drafts.Step(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, step.Step)
}

func TestSubmitMergesFinalPageFieldsBeforeValidating(t *testing.T) {
	gate, drafts, _ := newTestGate(t)
	ctx := context.Background()

	v := completeCarVehicle()
	v.FuelType = ""
	v.TransmissionType = ""
	require.NoError(t, drafts.SetVehicle(ctx, "s1", v))
	require.NoError(t, drafts.SetSeller(ctx, "s1", completeSeller()))

	outcome, err := gate.Submit(ctx, "s1", &SubmitRequest{
		FuelType:         "diesel",
		TransmissionType: "automatic",
	}, true)
	require.NoError(t, err)
	assert.False(t, outcome.Blocked())

	// The merged values survive a reload.
	stored, err := drafts.Vehicle(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "diesel", stored.FuelType)
	assert.Equal(t, "automatic", stored.TransmissionType)
}
