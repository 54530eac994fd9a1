// internal/service/dealer/service.go
package dealer

import (
	"context"

	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/dealer"
)

// Repository is the dealer directory persistence surface.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*dealer.Dealer, error)
	List(ctx context.Context, filters *dealer.ListFilters) ([]dealer.Dealer, int64, error)
}

// Service serves the read-only dealer directory.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns one dealer with its active advert count.
func (s *Service) Get(ctx context.Context, id int64) (*dealer.Dealer, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns the verified dealer directory, filtered and paginated.
func (s *Service) List(ctx context.Context, filters *dealer.ListFilters) (*dealer.ListResponse, error) {
	dealers, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if filters.PageSize > 0 {
		totalPages = int(total) / filters.PageSize
		if int(total)%filters.PageSize > 0 {
			totalPages++
		}
	}

	return &dealer.ListResponse{
		Dealers:    dealers,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}
