// internal/repository/postgres/booking_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vahanbazaar-service/internal/domain/booking"
	xerrors "vahanbazaar-service/internal/pkg/errors"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new test-drive booking.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	query := `
		INSERT INTO bookings (
			id, listing_id, buyer_identity_id, seller_identity_id,
			scheduled_at, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		b.ID, b.ListingID, b.BuyerIdentityID, b.SellerIdentityID,
		b.ScheduledAt, b.Notes, b.Status,
	).Scan(&b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// FindByID retrieves a booking by ID.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*booking.Booking, error) {
	query := `
		SELECT id, listing_id, buyer_identity_id, seller_identity_id,
		       scheduled_at, notes, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var b booking.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.ListingID, &b.BuyerIdentityID, &b.SellerIdentityID,
		&b.ScheduledAt, &b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &b, nil
}

// ListByBuyer returns bookings made by a user, newest first.
func (r *BookingRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]booking.Booking, error) {
	return r.list(ctx, "buyer_identity_id", buyerID)
}

// ListBySeller returns bookings against a seller's listings, newest first.
func (r *BookingRepository) ListBySeller(ctx context.Context, sellerID int64) ([]booking.Booking, error) {
	return r.list(ctx, "seller_identity_id", sellerID)
}

func (r *BookingRepository) list(ctx context.Context, column string, id int64) ([]booking.Booking, error) {
	query := fmt.Sprintf(`
		SELECT id, listing_id, buyer_identity_id, seller_identity_id,
		       scheduled_at, notes, status, created_at, updated_at
		FROM bookings
		WHERE %s = $1
		ORDER BY created_at DESC
	`, column)

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []booking.Booking{}
	for rows.Next() {
		var b booking.Booking
		err := rows.Scan(
			&b.ID, &b.ListingID, &b.BuyerIdentityID, &b.SellerIdentityID,
			&b.ScheduledAt, &b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// UpdateStatus moves a booking through its lifecycle.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status booking.Status) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
