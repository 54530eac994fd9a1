package user

// internal/domain/user/entity.go

import (
	"database/sql"
	"time"
)

// User is a phone-verified marketplace account.
type User struct {
	ID        int64          `json:"id" db:"id"`
	Phone     string         `json:"phone" db:"phone"`
	FullName  sql.NullString `json:"full_name" db:"full_name"`
	City      sql.NullString `json:"city" db:"city"`
	Role      string         `json:"role" db:"role"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// UpdateProfileRequest updates mutable profile fields.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	City     *string `json:"city"`
}
