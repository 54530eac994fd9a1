// internal/repository/postgres/favourite_repo.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"vahanbazaar-service/internal/domain/favourite"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

type FavouriteRepository struct {
	db *pgxpool.Pool
}

func NewFavouriteRepository(db *pgxpool.Pool) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

// Add saves a listing for a user. Saving twice is a no-op.
func (r *FavouriteRepository) Add(ctx context.Context, identityID int64, listingID string) error {
	query := `
		INSERT INTO favourites (identity_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (identity_id, listing_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, identityID, listingID); err != nil {
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

// Remove deletes a saved listing.
func (r *FavouriteRepository) Remove(ctx context.Context, identityID int64, listingID string) error {
	query := `DELETE FROM favourites WHERE identity_id = $1 AND listing_id = $2`

	result, err := r.db.Exec(ctx, query, identityID, listingID)
	if err != nil {
		return fmt.Errorf("failed to remove favourite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// Exists reports whether a user has saved a listing.
func (r *FavouriteRepository) Exists(ctx context.Context, identityID int64, listingID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favourites WHERE identity_id = $1 AND listing_id = $2)`

	var exists bool
	err := r.db.QueryRow(ctx, query, identityID, listingID).Scan(&exists)
	return exists, err
}

// ListByUser returns a user's saved listings, joined with the live listing
// rows, newest save first. Removed listings are skipped.
func (r *FavouriteRepository) ListByUser(ctx context.Context, identityID int64) ([]favourite.WithListing, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.identity_id, f.listing_id, f.created_at, %s
		FROM favourites f
		JOIN listings l ON l.id = f.listing_id
		WHERE f.identity_id = $1 AND l.status != 'removed'
		ORDER BY f.created_at DESC
	`, prefixedListingColumns("l"))

	rows, err := r.db.Query(ctx, query, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	defer rows.Close()

	favourites := []favourite.WithListing{}
	for rows.Next() {
		var f favourite.WithListing
		l := &f.Listing
		err := rows.Scan(
			&f.ID, &f.IdentityID, &f.ListingID, &f.CreatedAt,
			&l.ID, &l.SellerIdentityID, &l.Category, &l.BrandName, &l.BrandID,
			&l.ModelName, &l.ModelID, &l.VariantName, &l.Year, &l.City,
			&l.DistanceDriven, &l.DistanceUnit, &l.OwnerCount, &l.FuelType,
			&l.TransmissionType, &l.AskingPrice, &l.SellerName, &l.ContactNumber,
			&l.SellerRole, &l.PhotoURLs, &l.VideoURL, &l.Status,
			&l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favourite: %w", err)
		}
		favourites = append(favourites, f)
	}

	return favourites, rows.Err()
}
