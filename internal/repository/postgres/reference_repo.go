// internal/repository/postgres/reference_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vahanbazaar-service/internal/domain/reference"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

// ReferenceRepository reads the brand/model/variant lookup tables. The
// tables are seeded out of band and never written by this service.
type ReferenceRepository struct {
	db *pgxpool.Pool
}

func NewReferenceRepository(db *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListBrands returns every brand for a category, sorted by name.
func (r *ReferenceRepository) ListBrands(ctx context.Context, category reference.VehicleCategory) ([]reference.Brand, error) {
	query := `
		SELECT id, name, category
		FROM ref_brands
		WHERE category = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []reference.Brand{}
	for rows.Next() {
		var b reference.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Category); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}

	return brands, rows.Err()
}

// ListYears returns the distinct manufacture years available for a brand,
// newest first.
func (r *ReferenceRepository) ListYears(ctx context.Context, brandID int64) ([]int, error) {
	query := `
		SELECT DISTINCT year
		FROM ref_models
		WHERE brand_id = $1
		ORDER BY year DESC
	`

	rows, err := r.db.Query(ctx, query, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list years: %w", err)
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}

	return years, rows.Err()
}

// ListModels returns models restricted to one brand and year.
func (r *ReferenceRepository) ListModels(ctx context.Context, brandID int64, year int) ([]reference.Model, error) {
	query := `
		SELECT id, brand_id, name, year
		FROM ref_models
		WHERE brand_id = $1 AND year = $2
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, brandID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	models := []reference.Model{}
	for rows.Next() {
		var m reference.Model
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name, &m.Year); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, m)
	}

	return models, rows.Err()
}

// ListVariants returns variants restricted to one model.
func (r *ReferenceRepository) ListVariants(ctx context.Context, modelID int64) ([]reference.Variant, error) {
	query := `
		SELECT id, model_id, name
		FROM ref_variants
		WHERE model_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	defer rows.Close()

	variants := []reference.Variant{}
	for rows.Next() {
		var v reference.Variant
		if err := rows.Scan(&v.ID, &v.ModelID, &v.Name); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}

	return variants, rows.Err()
}

// FindBrandByName resolves a display name to its brand record. Matching is
// case-insensitive because committed values may come from free text.
func (r *ReferenceRepository) FindBrandByName(ctx context.Context, category reference.VehicleCategory, name string) (*reference.Brand, error) {
	query := `
		SELECT id, name, category
		FROM ref_brands
		WHERE category = $1 AND LOWER(name) = LOWER($2)
	`

	var b reference.Brand
	err := r.db.QueryRow(ctx, query, category, name).Scan(&b.ID, &b.Name, &b.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find brand: %w", err)
	}

	return &b, nil
}

// FindModelByName resolves a display name within one brand and year.
func (r *ReferenceRepository) FindModelByName(ctx context.Context, brandID int64, year int, name string) (*reference.Model, error) {
	query := `
		SELECT id, brand_id, name, year
		FROM ref_models
		WHERE brand_id = $1 AND year = $2 AND LOWER(name) = LOWER($3)
	`

	var m reference.Model
	err := r.db.QueryRow(ctx, query, brandID, year, name).Scan(&m.ID, &m.BrandID, &m.Name, &m.Year)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find model: %w", err)
	}

	return &m, nil
}

// FindVariantByName resolves a display name within one model.
func (r *ReferenceRepository) FindVariantByName(ctx context.Context, modelID int64, name string) (*reference.Variant, error) {
	query := `
		SELECT id, model_id, name
		FROM ref_variants
		WHERE model_id = $1 AND LOWER(name) = LOWER($2)
	`

	var v reference.Variant
	err := r.db.QueryRow(ctx, query, modelID, name).Scan(&v.ID, &v.ModelID, &v.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find variant: %w", err)
	}

	return &v, nil
}
