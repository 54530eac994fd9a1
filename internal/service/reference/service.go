// internal/service/reference/service.go
package reference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vahanbazaar-service/internal/domain/draft"
	"vahanbazaar-service/internal/domain/reference"
	"vahanbazaar-service/internal/pkg/draftstore"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

// Repository is the read-only view of the brand/model/variant tables.
type Repository interface {
	ListBrands(ctx context.Context, category reference.VehicleCategory) ([]reference.Brand, error)
	ListYears(ctx context.Context, brandID int64) ([]int, error)
	ListModels(ctx context.Context, brandID int64, year int) ([]reference.Model, error)
	ListVariants(ctx context.Context, modelID int64) ([]reference.Variant, error)
	FindBrandByName(ctx context.Context, category reference.VehicleCategory, name string) (*reference.Brand, error)
	FindModelByName(ctx context.Context, brandID int64, year int, name string) (*reference.Model, error)
	FindVariantByName(ctx context.Context, modelID int64, name string) (*reference.Variant, error)
}

// Service drives the brand → year → model → variant cascade. Each stage is
// gated on the previous stage's resolved identifier; committed values are
// written through to the draft store immediately.
type Service struct {
	repo   Repository
	drafts *draftstore.Store
	logger *zap.Logger
}

func NewService(repo Repository, drafts *draftstore.Store, logger *zap.Logger) *Service {
	return &Service{repo: repo, drafts: drafts, logger: logger}
}

// Suggest returns the typeahead candidates for one stage, filtered by a
// case-insensitive substring match on the query.
func (s *Service) Suggest(ctx context.Context, req *reference.SuggestRequest) (*reference.SuggestResponse, error) {
	names, err := s.candidates(ctx, req)
	if err != nil {
		return nil, err
	}

	return &reference.SuggestResponse{
		Stage:       req.Stage,
		Suggestions: Filter(names, req.Query),
	}, nil
}

func (s *Service) candidates(ctx context.Context, req *reference.SuggestRequest) ([]string, error) {
	switch req.Stage {
	case reference.StageBrand:
		if !req.Category.Valid() {
			return nil, xerrors.ErrInvalidInput
		}
		brands, err := s.repo.ListBrands(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(brands))
		for _, b := range brands {
			names = append(names, b.Name)
		}
		return names, nil

	case reference.StageYear:
		if req.BrandID == 0 {
			return nil, xerrors.ErrInvalidInput
		}
		years, err := s.repo.ListYears(ctx, req.BrandID)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(years))
		for _, y := range years {
			names = append(names, fmt.Sprintf("%d", y))
		}
		return names, nil

	case reference.StageModel:
		if req.BrandID == 0 || req.Year == 0 {
			return nil, xerrors.ErrInvalidInput
		}
		models, err := s.repo.ListModels(ctx, req.BrandID, req.Year)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(models))
		for _, m := range models {
			names = append(names, m.Name)
		}
		return names, nil

	case reference.StageVariant:
		if req.ModelID == 0 {
			return nil, xerrors.ErrInvalidInput
		}
		variants, err := s.repo.ListVariants(ctx, req.ModelID)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(variants))
		for _, v := range variants {
			names = append(names, v.Name)
		}
		return names, nil
	}

	return nil, xerrors.ErrInvalidInput
}

// Filter keeps the candidates containing the query, case-insensitively. An
// empty query passes everything through.
func Filter(candidates []string, query string) []string {
	if query == "" {
		return candidates
	}
	q := strings.ToLower(query)
	out := []string{}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}

// Resolve maps a committed display name to its backing ID and writes the
// result through to the session's draft. A failed lookup keeps the typed
// text but clears the ID, which leaves the next stage disabled. Selecting
// at any stage clears every downstream stage.
func (s *Service) Resolve(ctx context.Context, sessionID string, req *reference.ResolveRequest) (*reference.ResolveResponse, error) {
	vehicle, err := s.drafts.Vehicle(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	resp := &reference.ResolveResponse{Stage: req.Stage}

	switch req.Stage {
	case reference.StageBrand:
		if !req.Category.Valid() {
			return nil, xerrors.ErrInvalidInput
		}
		vehicle.Category = req.Category
		vehicle.BrandName = req.Name
		vehicle.BrandID = 0
		clearFromYear(&vehicle)

		brand, err := s.repo.FindBrandByName(ctx, req.Category, req.Name)
		if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		if brand != nil {
			vehicle.BrandID = brand.ID
			resp.ID, resp.Found = brand.ID, true
		}

	case reference.StageModel:
		if req.BrandID == 0 || req.Year == 0 {
			return nil, xerrors.ErrInvalidInput
		}
		vehicle.ModelName = req.Name
		vehicle.ModelID = 0
		clearFromVariant(&vehicle)

		model, err := s.repo.FindModelByName(ctx, req.BrandID, req.Year, req.Name)
		if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		if model != nil {
			vehicle.ModelID = model.ID
			resp.ID, resp.Found = model.ID, true
		}

	case reference.StageVariant:
		if req.ModelID == 0 {
			return nil, xerrors.ErrInvalidInput
		}
		vehicle.VariantName = req.Name

		variant, err := s.repo.FindVariantByName(ctx, req.ModelID, req.Name)
		if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
			return nil, err
		}
		if variant != nil {
			resp.ID, resp.Found = variant.ID, true
		}

	default:
		return nil, xerrors.ErrInvalidInput
	}

	if !resp.Found {
		s.logger.Info("reference lookup missed, keeping text without id",
			zap.String("stage", string(req.Stage)),
			zap.String("name", req.Name),
		)
	}

	if err := s.drafts.ReplaceVehicle(ctx, sessionID, vehicle); err != nil {
		return nil, err
	}

	return resp, nil
}

// CommitYear records a chosen manufacture year and clears the stages below
// it. Years come from a fixed candidate list, so there is nothing to
// resolve.
func (s *Service) CommitYear(ctx context.Context, sessionID string, year int) error {
	if year == 0 {
		return xerrors.ErrInvalidInput
	}
	vehicle, err := s.drafts.Vehicle(ctx, sessionID)
	if err != nil {
		return err
	}
	vehicle.Year = year
	clearFromModel(&vehicle)
	return s.drafts.ReplaceVehicle(ctx, sessionID, vehicle)
}

func clearFromYear(v *draft.VehicleSection) {
	v.Year = 0
	clearFromModel(v)
}

func clearFromModel(v *draft.VehicleSection) {
	v.ModelName = ""
	v.ModelID = 0
	clearFromVariant(v)
}

func clearFromVariant(v *draft.VehicleSection) {
	v.VariantName = ""
}
