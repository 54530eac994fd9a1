// internal/service/favourite/service.go
package favourite

import (
	"context"

	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/favourite"
	"vahanbazaar-service/internal/domain/listing"
)

// Repository is the favourites persistence surface.
type Repository interface {
	Add(ctx context.Context, identityID int64, listingID string) error
	Remove(ctx context.Context, identityID int64, listingID string) error
	Exists(ctx context.Context, identityID int64, listingID string) (bool, error)
	ListByUser(ctx context.Context, identityID int64) ([]favourite.WithListing, error)
}

// ListingFinder checks that the target advert exists before saving it.
type ListingFinder interface {
	FindByID(ctx context.Context, id string) (*listing.Listing, error)
}

// Service manages a user's saved adverts.
type Service struct {
	repo     Repository
	listings ListingFinder
	logger   *zap.Logger
}

func NewService(repo Repository, listings ListingFinder, logger *zap.Logger) *Service {
	return &Service{repo: repo, listings: listings, logger: logger}
}

// Add saves an advert. Saving one that is already saved succeeds quietly.
func (s *Service) Add(ctx context.Context, identityID int64, listingID string) error {
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		return err
	}
	return s.repo.Add(ctx, identityID, listingID)
}

// Remove drops a saved advert.
func (s *Service) Remove(ctx context.Context, identityID int64, listingID string) error {
	return s.repo.Remove(ctx, identityID, listingID)
}

// List returns the user's saved adverts with their live listing data.
func (s *Service) List(ctx context.Context, identityID int64) ([]favourite.WithListing, error) {
	return s.repo.ListByUser(ctx, identityID)
}

// IsSaved reports whether a user has saved an advert.
func (s *Service) IsSaved(ctx context.Context, identityID int64, listingID string) (bool, error) {
	return s.repo.Exists(ctx, identityID, listingID)
}
