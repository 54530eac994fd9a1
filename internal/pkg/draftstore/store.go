// internal/pkg/draftstore/store.go
package draftstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/draft"
)

// Store is the single durable owner of in-progress listing form state. Each
// draft session owns a fixed set of string keys; access goes through typed
// accessors so two components can never collide on an ad-hoc key. Writes
// are last-write-wins per key; there is one writer per key by design of the
// calling services.
type Store struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewStore(client *redis.Client, logger *zap.Logger, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{client: client, logger: logger, ttl: ttl}
}

// Vehicle returns the persisted vehicle section, or a zero section when the
// key is missing or holds malformed JSON. Storage corruption never crashes
// the flow; it is logged and read as empty.
func (s *Store) Vehicle(ctx context.Context, sessionID string) (draft.VehicleSection, error) {
	var v draft.VehicleSection
	err := s.read(ctx, sessionID, draft.SectionVehicle, &v)
	return v, err
}

// SetVehicle shallow-merges the partial section into the stored record:
// fields present in partial overwrite, everything else is preserved.
func (s *Store) SetVehicle(ctx context.Context, sessionID string, partial draft.VehicleSection) error {
	return s.merge(ctx, sessionID, draft.SectionVehicle, partial)
}

// ReplaceVehicle overwrites the stored vehicle section wholesale. The
// cascade resolver uses this when downstream fields must be cleared, which
// a merge cannot express.
func (s *Store) ReplaceVehicle(ctx context.Context, sessionID string, v draft.VehicleSection) error {
	return s.write(ctx, sessionID, draft.SectionVehicle, v)
}

// Seller returns the persisted seller/appointment section.
func (s *Store) Seller(ctx context.Context, sessionID string) (draft.SellerSection, error) {
	var v draft.SellerSection
	err := s.read(ctx, sessionID, draft.SectionSeller, &v)
	return v, err
}

// SetSeller shallow-merges the partial seller section.
func (s *Store) SetSeller(ctx context.Context, sessionID string, partial draft.SellerSection) error {
	return s.merge(ctx, sessionID, draft.SectionSeller, partial)
}

// Photos returns the post-upload filename/URL maps.
func (s *Store) Photos(ctx context.Context, sessionID string) (draft.PhotoSection, error) {
	var v draft.PhotoSection
	err := s.read(ctx, sessionID, draft.SectionPhotos, &v)
	return v, err
}

// SetPhotos replaces the stored maps wholesale. Upload batches always carry
// the full result set, so a merge would only resurrect stale buckets.
func (s *Store) SetPhotos(ctx context.Context, sessionID string, v draft.PhotoSection) error {
	return s.write(ctx, sessionID, draft.SectionPhotos, v)
}

// Step returns the persisted form step.
func (s *Store) Step(ctx context.Context, sessionID string) (draft.StepSection, error) {
	var v draft.StepSection
	err := s.read(ctx, sessionID, draft.SectionStep, &v)
	return v, err
}

// SetStep replaces the step counter.
func (s *Store) SetStep(ctx context.Context, sessionID string, v draft.StepSection) error {
	return s.write(ctx, sessionID, draft.SectionStep, v)
}

// SetSwitching raises or clears the category-switch guard. While raised,
// restoration is suppressed so stale cross-category state cannot resurface
// mid-transition.
func (s *Store) SetSwitching(ctx context.Context, sessionID string, switching bool) error {
	key := s.key(sessionID, "switching")
	if !switching {
		return s.client.Del(ctx, key).Err()
	}
	// Guard auto-expires in case a client dies mid-switch.
	return s.client.Set(ctx, key, "1", time.Minute).Err()
}

// IsSwitching reports whether a category switch is in flight.
func (s *Store) IsSwitching(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID, "switching")).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check switching guard: %w", err)
	}
	return n > 0, nil
}

// ClearAll removes every section key for the session. The switching guard
// is left alone so clearing during a category switch cannot drop it.
func (s *Store) ClearAll(ctx context.Context, sessionID string) error {
	keys := []string{
		s.key(sessionID, draft.SectionVehicle),
		s.key(sessionID, draft.SectionSeller),
		s.key(sessionID, draft.SectionPhotos),
		s.key(sessionID, draft.SectionStep),
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// ---- internals ----

func (s *Store) key(sessionID, section string) string {
	return fmt.Sprintf("draft:%s:%s", sessionID, section)
}

func (s *Store) read(ctx context.Context, sessionID, section string, out interface{}) error {
	data, err := s.client.Get(ctx, s.key(sessionID, section)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read draft section %s: %w", section, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		// Treat corrupt state as empty rather than wedging the form.
		s.logger.Warn("malformed draft section, treating as empty",
			zap.String("session_id", sessionID),
			zap.String("section", section),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Store) write(ctx context.Context, sessionID, section string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal draft section %s: %w", section, err)
	}
	if err := s.client.Set(ctx, s.key(sessionID, section), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write draft section %s: %w", section, err)
	}
	return nil
}

// merge overlays the partial record's present fields onto the stored JSON.
// Sections use omitempty on every field, so zero fields never clobber what
// is already saved.
func (s *Store) merge(ctx context.Context, sessionID, section string, partial interface{}) error {
	existing := map[string]interface{}{}
	data, err := s.client.Get(ctx, s.key(sessionID, section)).Bytes()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to read draft section %s: %w", section, err)
	}
	if err == nil {
		if uerr := json.Unmarshal(data, &existing); uerr != nil {
			s.logger.Warn("malformed draft section, overwriting",
				zap.String("session_id", sessionID),
				zap.String("section", section),
				zap.Error(uerr),
			)
			existing = map[string]interface{}{}
		}
	}

	patch, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("failed to marshal draft patch: %w", err)
	}
	patchMap := map[string]interface{}{}
	if err := json.Unmarshal(patch, &patchMap); err != nil {
		return fmt.Errorf("failed to decode draft patch: %w", err)
	}

	for k, v := range patchMap {
		existing[k] = v
	}

	return s.write(ctx, sessionID, section, existing)
}
