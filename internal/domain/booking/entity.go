package booking

// internal/domain/booking/entity.go

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Booking is a test-drive appointment between a buyer and a listing.
type Booking struct {
	ID               string    `json:"id" db:"id"`
	ListingID        string    `json:"listing_id" db:"listing_id"`
	BuyerIdentityID  int64     `json:"buyer_identity_id" db:"buyer_identity_id"`
	SellerIdentityID int64     `json:"seller_identity_id" db:"seller_identity_id"`
	ScheduledAt      time.Time `json:"scheduled_at" db:"scheduled_at"`
	Notes            string    `json:"notes,omitempty" db:"notes"`
	Status           Status    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// CreateRequest books a test drive on a listing.
type CreateRequest struct {
	ListingID   string    `json:"listing_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}
