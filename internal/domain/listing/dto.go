package listing

import "vahanbazaar-service/internal/domain/reference"

// ListFilters drives search/browse. PageSize stays bounded; the frontend
// walks pages for infinite scroll.
type ListFilters struct {
	Category  reference.VehicleCategory `form:"category"`
	City      string                    `form:"city"`
	BrandName string                    `form:"brand"`
	FuelType  string                    `form:"fuel_type"`
	MinPrice  int64                     `form:"min_price"`
	MaxPrice  int64                     `form:"max_price"`
	MinYear   int                       `form:"min_year"`
	MaxYear   int                       `form:"max_year"`
	Search    string                    `form:"search"`
	Page      int                       `form:"page"`
	PageSize  int                       `form:"page_size"`
	SortBy    string                    `form:"sort_by"`
	SortOrder string                    `form:"sort_order"`
}

// ListResponse is a paginated search result.
type ListResponse struct {
	Listings   []Listing `json:"listings"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
