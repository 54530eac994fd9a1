// internal/service/draft/service.go
package draft

import (
	"context"

	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/draft"
	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/service/media"
)

// Service coordinates draft restoration, auto-save, and the destructive
// category switch between the draft store and the in-memory media
// collectors.
type Service struct {
	store      *draftstore.Store
	collectors *media.Registry
	logger     *zap.Logger
}

func NewService(store *draftstore.Store, collectors *media.Registry, logger *zap.Logger) *Service {
	return &Service{store: store, collectors: collectors, logger: logger}
}

// Restore hydrates the full draft for a session. While a category switch
// is in flight the stored state is stale by definition, so restoration is
// suppressed and the caller starts from a blank form.
func (s *Service) Restore(ctx context.Context, sessionID string) (*draft.Draft, bool, error) {
	switching, err := s.store.IsSwitching(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if switching {
		return &draft.Draft{}, false, nil
	}

	vehicle, err := s.store.Vehicle(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	seller, err := s.store.Seller(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	photos, err := s.store.Photos(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	step, err := s.store.Step(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	d := &draft.Draft{Vehicle: vehicle, Seller: seller, Photos: photos, Step: step}
	restored := !vehicle.Empty() || !seller.Empty() || len(photos.URLs) > 0 || step.Step > 0
	return d, restored, nil
}

// SaveVehicle auto-saves the vehicle section. A completely blank record is
// skipped so a fresh mount never wipes a stored draft.
func (s *Service) SaveVehicle(ctx context.Context, sessionID string, v draft.VehicleSection) error {
	if v.Empty() {
		return nil
	}
	return s.store.SetVehicle(ctx, sessionID, v)
}

// SaveSeller auto-saves the seller section with the same blank-record gate.
func (s *Service) SaveSeller(ctx context.Context, sessionID string, v draft.SellerSection) error {
	if v.Empty() {
		return nil
	}
	return s.store.SetSeller(ctx, sessionID, v)
}

// SetStep records form progress.
func (s *Service) SetStep(ctx context.Context, sessionID string, step int) error {
	if step < 0 {
		return xerrors.ErrInvalidInput
	}
	return s.store.SetStep(ctx, sessionID, draft.StepSection{Step: step})
}

// SwitchCategory throws away everything tied to the old category: stored
// sections, staged media, and form progress. The switching guard is raised
// for the duration so a concurrent restore cannot resurrect stale state.
func (s *Service) SwitchCategory(ctx context.Context, sessionID string, category reference.VehicleCategory) error {
	if !category.Valid() {
		return xerrors.ErrInvalidInput
	}

	if err := s.store.SetSwitching(ctx, sessionID, true); err != nil {
		return err
	}

	if err := s.store.ClearAll(ctx, sessionID); err != nil {
		return err
	}

	if collector, ok := s.collectors.Lookup(sessionID); ok {
		collector.SwitchCategory(category)
	}

	if err := s.store.SetVehicle(ctx, sessionID, draft.VehicleSection{Category: category}); err != nil {
		return err
	}

	if err := s.store.SetSwitching(ctx, sessionID, false); err != nil {
		return err
	}

	s.logger.Info("category switched",
		zap.String("session_id", sessionID),
		zap.String("category", string(category)),
	)
	return nil
}

// Discard drops the whole draft: stored state, staged files, and any
// leftover switching guard.
func (s *Service) Discard(ctx context.Context, sessionID string) error {
	s.collectors.Drop(sessionID)
	if err := s.store.ClearAll(ctx, sessionID); err != nil {
		return err
	}
	return s.store.SetSwitching(ctx, sessionID, false)
}
