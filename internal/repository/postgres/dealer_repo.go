// internal/repository/postgres/dealer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vahanbazaar-service/internal/domain/dealer"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

type DealerRepository struct {
	db *pgxpool.Pool
}

func NewDealerRepository(db *pgxpool.Pool) *DealerRepository {
	return &DealerRepository{db: db}
}

// FindByID retrieves a dealer with its live advert count.
func (r *DealerRepository) FindByID(ctx context.Context, id int64) (*dealer.Dealer, error) {
	query := `
		SELECT d.id, d.identity_id, d.shop_name, d.city, d.address, d.phone,
		       d.categories, d.is_verified, d.created_at, d.updated_at,
		       COUNT(l.id) FILTER (WHERE l.status = 'active') AS active_adverts
		FROM dealers d
		LEFT JOIN listings l ON l.seller_identity_id = d.identity_id
		WHERE d.id = $1
		GROUP BY d.id
	`

	var d dealer.Dealer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.IdentityID, &d.ShopName, &d.City, &d.Address, &d.Phone,
		&d.Categories, &d.IsVerified, &d.CreatedAt, &d.UpdatedAt, &d.ActiveAdverts,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find dealer: %w", err)
	}

	return &d, nil
}

// List returns the dealer directory with filters and pagination.
func (r *DealerRepository) List(ctx context.Context, filters *dealer.ListFilters) ([]dealer.Dealer, int64, error) {
	conditions := []string{"d.is_verified = TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.City != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(d.city) = LOWER($%d)", argPos))
		args = append(args, filters.City)
		argPos++
	}

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(d.categories)", argPos))
		args = append(args, filters.Category)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM dealers d WHERE %s", whereClause)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count dealers: %w", err)
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	offset := (filters.Page - 1) * filters.PageSize

	query := fmt.Sprintf(`
		SELECT d.id, d.identity_id, d.shop_name, d.city, d.address, d.phone,
		       d.categories, d.is_verified, d.created_at, d.updated_at,
		       COUNT(l.id) FILTER (WHERE l.status = 'active') AS active_adverts
		FROM dealers d
		LEFT JOIN listings l ON l.seller_identity_id = d.identity_id
		WHERE %s
		GROUP BY d.id
		ORDER BY d.shop_name
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filters.PageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list dealers: %w", err)
	}
	defer rows.Close()

	dealers := []dealer.Dealer{}
	for rows.Next() {
		var d dealer.Dealer
		err := rows.Scan(
			&d.ID, &d.IdentityID, &d.ShopName, &d.City, &d.Address, &d.Phone,
			&d.Categories, &d.IsVerified, &d.CreatedAt, &d.UpdatedAt, &d.ActiveAdverts,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan dealer: %w", err)
		}
		dealers = append(dealers, d)
	}

	return dealers, total, rows.Err()
}
