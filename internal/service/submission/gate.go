// internal/service/submission/gate.go
package submission

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/draft"
	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/pkg/draftstore"
)

// Interrupter opens the sign-in prompt on the submitting client.
type Interrupter interface {
	BroadcastSignInRequired(draftSessionID string, step int, reason string)
}

// SubmitRequest carries the final-page fields that arrive with the submit
// action itself rather than through earlier auto-saves.
type SubmitRequest struct {
	FuelType         string `json:"fuel_type"`
	TransmissionType string `json:"transmission_type"`
}

// Outcome reports what the gate decided. Exactly one of the three shapes
// applies: missing fields block, a sign-in interrupt pauses, or the step
// counter advances.
type Outcome struct {
	Missing        []string `json:"missing,omitempty"`
	Notice         string   `json:"notice,omitempty"`
	SignInRequired bool     `json:"sign_in_required,omitempty"`
	Step           int      `json:"step,omitempty"`
}

// Blocked reports whether required fields are still empty.
func (o *Outcome) Blocked() bool { return len(o.Missing) > 0 }

// Gate is the final checkpoint before a draft becomes a listing.
type Gate struct {
	drafts      *draftstore.Store
	interrupter Interrupter
	logger      *zap.Logger
}

func NewGate(drafts *draftstore.Store, interrupter Interrupter, logger *zap.Logger) *Gate {
	return &Gate{drafts: drafts, interrupter: interrupter, logger: logger}
}

// Validate returns the display labels of every required field that is
// still empty, in form order. Transmission is only required for cars.
func Validate(v draft.VehicleSection, s draft.SellerSection) []string {
	missing := []string{}

	check := func(label string, filled bool) {
		if !filled {
			missing = append(missing, label)
		}
	}

	check("Brand", v.BrandName != "")
	check("Year", v.Year != 0)
	check("Model", v.ModelName != "")
	check("Variant", v.VariantName != "")
	check("City", v.City != "")
	check("Distance driven", v.DistanceDriven != 0 && v.DistanceUnitChoice != "")
	check("Seller name", s.SellerName != "")
	check("Asking price", s.AskingPrice != 0)
	check("Contact number", s.ContactNumber != "")
	check("Seller role", s.SellerRole != "")
	check("Owner count", v.OwnerCount != 0)
	check("Fuel type", v.FuelType != "")
	if v.Category == reference.CategoryCar {
		check("Transmission", v.TransmissionType != "")
	}

	return missing
}

// Notice joins missing labels into the single user-facing message.
func Notice(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return "Please fill in: " + strings.Join(missing, ", ")
}

// Submit runs the gate for one session. Final-page fuel/transmission
// values are merged into the persisted draft first so a reload lands on a
// complete record. When everything is present, an unauthenticated session
// gets the sign-in interrupt; an authenticated one advances the step.
// Resuming after sign-in is just calling Submit again: all state lives in
// the draft store.
func (g *Gate) Submit(ctx context.Context, sessionID string, req *SubmitRequest, authenticated bool) (*Outcome, error) {
	if req.FuelType != "" || req.TransmissionType != "" {
		patch := draft.VehicleSection{
			FuelType:         req.FuelType,
			TransmissionType: req.TransmissionType,
		}
		if err := g.drafts.SetVehicle(ctx, sessionID, patch); err != nil {
			return nil, err
		}
	}

	vehicle, err := g.drafts.Vehicle(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	seller, err := g.drafts.Seller(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if missing := Validate(vehicle, seller); len(missing) > 0 {
		return &Outcome{Missing: missing, Notice: Notice(missing)}, nil
	}

	step, err := g.drafts.Step(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !authenticated {
		g.logger.Info("submission paused for sign-in",
			zap.String("session_id", sessionID),
			zap.Int("step", step.Step),
		)
		g.interrupter.BroadcastSignInRequired(sessionID, step.Step, "sign in to publish your listing")
		return &Outcome{SignInRequired: true, Step: step.Step}, nil
	}

	next := draft.StepSection{Step: step.Step + 1}
	if err := g.drafts.SetStep(ctx, sessionID, next); err != nil {
		return nil, err
	}

	g.logger.Info("submission gate passed",
		zap.String("session_id", sessionID),
		zap.Int("step", next.Step),
	)
	return &Outcome{Step: next.Step}, nil
}
