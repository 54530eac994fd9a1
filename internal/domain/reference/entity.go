package reference

// internal/domain/reference/entity.go

// VehicleCategory is the top-level listing category. Changing it mid-draft
// invalidates every downstream selection.
type VehicleCategory string

const (
	CategoryCar  VehicleCategory = "car"
	CategoryBike VehicleCategory = "bike"
)

// Valid reports whether the category is one of the known values.
func (c VehicleCategory) Valid() bool {
	return c == CategoryCar || c == CategoryBike
}

// Stage identifies which step of the brand→year→model→variant cascade a
// suggestion query targets.
type Stage string

const (
	StageBrand   Stage = "brand"
	StageYear    Stage = "year"
	StageModel   Stage = "model"
	StageVariant Stage = "variant"
)

// Brand is a read-only manufacturer record.
type Brand struct {
	ID       int64           `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Category VehicleCategory `json:"category" db:"category"`
}

// Model is a read-only model record tied to a brand and manufacture year.
type Model struct {
	ID      int64  `json:"id" db:"id"`
	BrandID int64  `json:"brand_id" db:"brand_id"`
	Name    string `json:"name" db:"name"`
	Year    int    `json:"year" db:"year"`
}

// Variant is a read-only trim record tied to a model.
type Variant struct {
	ID      int64  `json:"id" db:"id"`
	ModelID int64  `json:"model_id" db:"model_id"`
	Name    string `json:"name" db:"name"`
}
