// internal/service/listing/service.go
package listing

import (
	"context"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/listing"
	"vahanbazaar-service/internal/domain/media"
	wstypes "vahanbazaar-service/internal/domain/websocket"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
	"vahanbazaar-service/internal/service/submission"
)

// Repository is the listing persistence surface.
type Repository interface {
	Create(ctx context.Context, l *listing.Listing) error
	FindByID(ctx context.Context, id string) (*listing.Listing, error)
	List(ctx context.Context, filters *listing.ListFilters) ([]listing.Listing, int64, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]listing.Listing, error)
	UpdateStatus(ctx context.Context, id string, status listing.Status) error
}

// Broadcaster announces listing lifecycle events.
type Broadcaster interface {
	BroadcastListingCreated(data *wstypes.ListingEventData)
	BroadcastListingSold(data *wstypes.ListingEventData)
}

// Service publishes drafts as adverts and serves search/browse.
type Service struct {
	repo   Repository
	drafts *draftstore.Store
	hub    Broadcaster
	logger *zap.Logger
}

func NewService(repo Repository, drafts *draftstore.Store, hub Broadcaster, logger *zap.Logger) *Service {
	return &Service{repo: repo, drafts: drafts, hub: hub, logger: logger}
}

// Publish turns a completed draft into a live advert. The draft must pass
// the same validation as the submission gate; the photo section supplies
// the media addresses. The draft is cleared once the row is committed.
func (s *Service) Publish(ctx context.Context, sessionID string, sellerID int64) (*listing.Listing, error) {
	vehicle, err := s.drafts.Vehicle(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	seller, err := s.drafts.Seller(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	photos, err := s.drafts.Photos(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if missing := submission.Validate(vehicle, seller); len(missing) > 0 {
		return nil, xerrors.ErrInvalidInput
	}

	photoURLs := []string{}
	videoURL := ""
	for _, bucket := range media.BucketsFor(vehicle.Category) {
		urls := photos.URLs[bucket]
		if media.KindOf(bucket) == media.KindVideo {
			if len(urls) > 0 {
				videoURL = urls[0]
			}
			continue
		}
		photoURLs = append(photoURLs, urls...)
	}

	l := &listing.Listing{
		ID:               ulid.Make().String(),
		SellerIdentityID: sellerID,
		Category:         vehicle.Category,
		BrandName:        vehicle.BrandName,
		BrandID:          vehicle.BrandID,
		ModelName:        vehicle.ModelName,
		ModelID:          vehicle.ModelID,
		VariantName:      vehicle.VariantName,
		Year:             vehicle.Year,
		City:             vehicle.City,
		DistanceDriven:   vehicle.DistanceDriven,
		DistanceUnit:     vehicle.DistanceUnitChoice,
		OwnerCount:       vehicle.OwnerCount,
		FuelType:         vehicle.FuelType,
		TransmissionType: vehicle.TransmissionType,
		AskingPrice:      seller.AskingPrice,
		SellerName:       seller.SellerName,
		ContactNumber:    seller.ContactNumber,
		SellerRole:       seller.SellerRole,
		PhotoURLs:        photoURLs,
		VideoURL:         videoURL,
		Status:           listing.StatusActive,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	if err := s.drafts.ClearAll(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear draft after publish",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	s.hub.BroadcastListingCreated(&wstypes.ListingEventData{
		ListingID: l.ID,
		Category:  string(l.Category),
		City:      l.City,
	})

	s.logger.Info("listing published",
		zap.String("listing_id", l.ID),
		zap.Int64("seller_id", sellerID),
	)
	return l, nil
}

// Get returns one advert.
func (s *Service) Get(ctx context.Context, id string) (*listing.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

// Search runs a filtered, paginated browse query.
func (s *Service) Search(ctx context.Context, filters *listing.ListFilters) (*listing.ListResponse, error) {
	if filters.Category != "" && !filters.Category.Valid() {
		return nil, xerrors.ErrInvalidInput
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	listings, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &listing.ListResponse{
		Listings:   listings,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Mine returns the seller's own adverts, sold ones included.
func (s *Service) Mine(ctx context.Context, sellerID int64) ([]listing.Listing, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// MarkSold flips an advert to sold. Only the owner may do it.
func (s *Service) MarkSold(ctx context.Context, id string, sellerID int64) error {
	l, err := s.authorize(ctx, id, sellerID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, listing.StatusSold); err != nil {
		return err
	}

	s.hub.BroadcastListingSold(&wstypes.ListingEventData{
		ListingID: l.ID,
		Category:  string(l.Category),
		City:      l.City,
	})
	return nil
}

// Remove takes an advert off the marketplace. Only the owner may do it.
func (s *Service) Remove(ctx context.Context, id string, sellerID int64) error {
	if _, err := s.authorize(ctx, id, sellerID); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, listing.StatusRemoved)
}

func (s *Service) authorize(ctx context.Context, id string, sellerID int64) (*listing.Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.SellerIdentityID != sellerID {
		return nil, xerrors.ErrForbidden
	}
	return l, nil
}
