// internal/repository/postgres/listing_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vahanbazaar-service/internal/domain/listing"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

type ListingRepository struct {
	db *pgxpool.Pool
}

func NewListingRepository(db *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{db: db}
}

// prefixedListingColumns qualifies the listing column list with a table
// alias for join queries.
func prefixedListingColumns(alias string) string {
	cols := strings.Split(listingColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

const listingColumns = `
	id, seller_identity_id, category, brand_name, brand_id, model_name, model_id,
	variant_name, year, city, distance_driven, distance_unit, owner_count,
	fuel_type, transmission_type, asking_price, seller_name, contact_number,
	seller_role, photo_urls, video_url, status, created_at, updated_at
`

// Create inserts a new listing.
func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	query := `
		INSERT INTO listings (
			id, seller_identity_id, category, brand_name, brand_id, model_name,
			model_id, variant_name, year, city, distance_driven, distance_unit,
			owner_count, fuel_type, transmission_type, asking_price, seller_name,
			contact_number, seller_role, photo_urls, video_url, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		l.ID, l.SellerIdentityID, l.Category, l.BrandName, l.BrandID, l.ModelName,
		l.ModelID, l.VariantName, l.Year, l.City, l.DistanceDriven, l.DistanceUnit,
		l.OwnerCount, l.FuelType, l.TransmissionType, l.AskingPrice, l.SellerName,
		l.ContactNumber, l.SellerRole, l.PhotoURLs, l.VideoURL, l.Status,
	).Scan(&l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// FindByID retrieves a listing by ID.
func (r *ListingRepository) FindByID(ctx context.Context, id string) (*listing.Listing, error) {
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, listingColumns)

	var l listing.Listing
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.SellerIdentityID, &l.Category, &l.BrandName, &l.BrandID,
		&l.ModelName, &l.ModelID, &l.VariantName, &l.Year, &l.City,
		&l.DistanceDriven, &l.DistanceUnit, &l.OwnerCount, &l.FuelType,
		&l.TransmissionType, &l.AskingPrice, &l.SellerName, &l.ContactNumber,
		&l.SellerRole, &l.PhotoURLs, &l.VideoURL, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}

	return &l, nil
}

// List retrieves active listings with filters and pagination.
func (r *ListingRepository) List(ctx context.Context, filters *listing.ListFilters) ([]listing.Listing, int64, error) {
	// Build WHERE clause
	conditions := []string{"status = 'active'"}
	args := []interface{}{}
	argPos := 1

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, filters.Category)
		argPos++
	}

	if filters.City != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(city) = LOWER($%d)", argPos))
		args = append(args, filters.City)
		argPos++
	}

	if filters.BrandName != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(brand_name) = LOWER($%d)", argPos))
		args = append(args, filters.BrandName)
		argPos++
	}

	if filters.FuelType != "" {
		conditions = append(conditions, fmt.Sprintf("fuel_type = $%d", argPos))
		args = append(args, filters.FuelType)
		argPos++
	}

	if filters.MinPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("asking_price >= $%d", argPos))
		args = append(args, filters.MinPrice)
		argPos++
	}

	if filters.MaxPrice > 0 {
		conditions = append(conditions, fmt.Sprintf("asking_price <= $%d", argPos))
		args = append(args, filters.MaxPrice)
		argPos++
	}

	if filters.MinYear > 0 {
		conditions = append(conditions, fmt.Sprintf("year >= $%d", argPos))
		args = append(args, filters.MinYear)
		argPos++
	}

	if filters.MaxYear > 0 {
		conditions = append(conditions, fmt.Sprintf("year <= $%d", argPos))
		args = append(args, filters.MaxYear)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(brand_name ILIKE $%d OR model_name ILIKE $%d OR variant_name ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM listings WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	// Pagination
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}

	offset := (filters.Page - 1) * filters.PageSize

	// Sorting: whitelist columns, never interpolate raw input
	sortBy := "created_at"
	switch filters.SortBy {
	case "price":
		sortBy = "asking_price"
	case "year":
		sortBy = "year"
	case "distance":
		sortBy = "distance_driven"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, listingColumns, whereClause, sortBy, sortOrder, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := []listing.Listing{}
	for rows.Next() {
		var l listing.Listing
		err := rows.Scan(
			&l.ID, &l.SellerIdentityID, &l.Category, &l.BrandName, &l.BrandID,
			&l.ModelName, &l.ModelID, &l.VariantName, &l.Year, &l.City,
			&l.DistanceDriven, &l.DistanceUnit, &l.OwnerCount, &l.FuelType,
			&l.TransmissionType, &l.AskingPrice, &l.SellerName, &l.ContactNumber,
			&l.SellerRole, &l.PhotoURLs, &l.VideoURL, &l.Status,
			&l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, total, rows.Err()
}

// ListBySeller retrieves all listings owned by one seller, newest first.
func (r *ListingRepository) ListBySeller(ctx context.Context, sellerID int64) ([]listing.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE seller_identity_id = $1 AND status != 'removed'
		ORDER BY created_at DESC
	`, listingColumns)

	rows, err := r.db.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller listings: %w", err)
	}
	defer rows.Close()

	listings := []listing.Listing{}
	for rows.Next() {
		var l listing.Listing
		err := rows.Scan(
			&l.ID, &l.SellerIdentityID, &l.Category, &l.BrandName, &l.BrandID,
			&l.ModelName, &l.ModelID, &l.VariantName, &l.Year, &l.City,
			&l.DistanceDriven, &l.DistanceUnit, &l.OwnerCount, &l.FuelType,
			&l.TransmissionType, &l.AskingPrice, &l.SellerName, &l.ContactNumber,
			&l.SellerRole, &l.PhotoURLs, &l.VideoURL, &l.Status,
			&l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// UpdateStatus moves a listing between active/sold/removed.
func (r *ListingRepository) UpdateStatus(ctx context.Context, id string, status listing.Status) error {
	query := `UPDATE listings SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update listing status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}

// CountActiveBySeller returns the number of live adverts for a seller.
func (r *ListingRepository) CountActiveBySeller(ctx context.Context, sellerID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM listings WHERE seller_identity_id = $1 AND status = 'active'`

	var count int64
	if err := r.db.QueryRow(ctx, query, sellerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count seller listings: %w", err)
	}
	return count, nil
}
