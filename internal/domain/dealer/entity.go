package dealer

// internal/domain/dealer/entity.go

import (
	"time"

	"github.com/lib/pq"
)

// Dealer is a verified trade seller shown in the directory.
type Dealer struct {
	ID            int64          `json:"id" db:"id"`
	IdentityID    int64          `json:"identity_id" db:"identity_id"`
	ShopName      string         `json:"shop_name" db:"shop_name"`
	City          string         `json:"city" db:"city"`
	Address       string         `json:"address,omitempty" db:"address"`
	Phone         string         `json:"phone" db:"phone"`
	Categories    pq.StringArray `json:"categories" db:"categories"`
	IsVerified    bool           `json:"is_verified" db:"is_verified"`
	ActiveAdverts int64          `json:"active_adverts" db:"-"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// ListFilters narrows the dealer directory.
type ListFilters struct {
	City     string `form:"city"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ListResponse is a paginated directory page.
type ListResponse struct {
	Dealers    []Dealer `json:"dealers"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}
