package favourite

// internal/domain/favourite/entity.go

import (
	"time"

	"vahanbazaar-service/internal/domain/listing"
)

// Favourite marks one listing saved by one user.
type Favourite struct {
	ID         int64     `json:"id" db:"id"`
	IdentityID int64     `json:"identity_id" db:"identity_id"`
	ListingID  string    `json:"listing_id" db:"listing_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// WithListing is the list view: the saved listing joined in.
type WithListing struct {
	Favourite
	Listing listing.Listing `json:"listing"`
}
