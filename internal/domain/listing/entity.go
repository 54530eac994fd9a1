package listing

// internal/domain/listing/entity.go

import (
	"time"

	"github.com/lib/pq"

	"vahanbazaar-service/internal/domain/reference"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusSold    Status = "sold"
	StatusRemoved Status = "removed"
)

// Listing is a published used-vehicle advert.
type Listing struct {
	ID               string                    `json:"id" db:"id"`
	SellerIdentityID int64                     `json:"seller_identity_id" db:"seller_identity_id"`
	Category         reference.VehicleCategory `json:"category" db:"category"`
	BrandName        string                    `json:"brand_name" db:"brand_name"`
	BrandID          int64                     `json:"brand_id" db:"brand_id"`
	ModelName        string                    `json:"model_name" db:"model_name"`
	ModelID          int64                     `json:"model_id" db:"model_id"`
	VariantName      string                    `json:"variant_name" db:"variant_name"`
	Year             int                       `json:"year" db:"year"`
	City             string                    `json:"city" db:"city"`
	DistanceDriven   int64                     `json:"distance_driven" db:"distance_driven"`
	DistanceUnit     string                    `json:"distance_unit" db:"distance_unit"`
	OwnerCount       int                       `json:"owner_count" db:"owner_count"`
	FuelType         string                    `json:"fuel_type" db:"fuel_type"`
	TransmissionType string                    `json:"transmission_type,omitempty" db:"transmission_type"`
	AskingPrice      int64                     `json:"asking_price" db:"asking_price"`
	SellerName       string                    `json:"seller_name" db:"seller_name"`
	ContactNumber    string                    `json:"contact_number" db:"contact_number"`
	SellerRole       string                    `json:"seller_role" db:"seller_role"`
	PhotoURLs        pq.StringArray            `json:"photo_urls" db:"photo_urls"`
	VideoURL         string                    `json:"video_url,omitempty" db:"video_url"`
	Status           Status                    `json:"status" db:"status"`
	CreatedAt        time.Time                 `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at" db:"updated_at"`
}
