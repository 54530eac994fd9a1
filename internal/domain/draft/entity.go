package draft

// internal/domain/draft/entity.go

import "vahanbazaar-service/internal/domain/reference"

// Section keys under which draft state is persisted. One writer per key.
const (
	SectionVehicle = "vehicle"
	SectionSeller  = "seller"
	SectionPhotos  = "photos"
	SectionStep    = "step"
)

// VehicleSection holds the vehicle half of an in-progress listing. Every
// field is optional until the submission gate runs; identifiers are zero
// until the matching name has been resolved.
type VehicleSection struct {
	Category           reference.VehicleCategory `json:"category,omitempty"`
	BrandName          string                    `json:"brand_name,omitempty"`
	BrandID            int64                     `json:"brand_id,omitempty"`
	Year               int                       `json:"year,omitempty"`
	ModelName          string                    `json:"model_name,omitempty"`
	ModelID            int64                     `json:"model_id,omitempty"`
	VariantName        string                    `json:"variant_name,omitempty"`
	City               string                    `json:"city,omitempty"`
	DistanceDriven     int64                     `json:"distance_driven,omitempty"`
	DistanceUnitChoice string                    `json:"distance_unit_choice,omitempty"`
	OwnerCount         int                       `json:"owner_count,omitempty"`
	FuelType           string                    `json:"fuel_type,omitempty"`
	TransmissionType   string                    `json:"transmission_type,omitempty"`
}

// Empty reports whether no tracked field has been filled in. The auto-save
// gate uses this to avoid clobbering stored state with a blank record on
// first mount.
func (v VehicleSection) Empty() bool {
	return v.Category == "" && v.BrandName == "" && v.BrandID == 0 &&
		v.Year == 0 && v.ModelName == "" && v.ModelID == 0 &&
		v.VariantName == "" && v.City == "" && v.DistanceDriven == 0 &&
		v.DistanceUnitChoice == "" && v.OwnerCount == 0 &&
		v.FuelType == "" && v.TransmissionType == ""
}

// SellerSection holds the seller/appointment half of the draft.
type SellerSection struct {
	SellerName    string `json:"seller_name,omitempty"`
	AskingPrice   int64  `json:"asking_price,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
	SellerRole    string `json:"seller_role,omitempty"`
}

// Empty reports whether no seller field has been filled in.
func (s SellerSection) Empty() bool {
	return s.SellerName == "" && s.AskingPrice == 0 &&
		s.ContactNumber == "" && s.SellerRole == ""
}

// PhotoSection stores post-upload metadata only. Raw file handles are never
// persisted; the media collector keeps those in memory.
type PhotoSection struct {
	Names map[string][]string `json:"names,omitempty"`
	URLs  map[string][]string `json:"urls,omitempty"`
}

// StepSection tracks how far through the multi-step form the draft has
// progressed so an authentication interrupt can resume transparently.
type StepSection struct {
	Step int `json:"step"`
}

// Draft is the full hydrated view of one session's persisted form state.
type Draft struct {
	Vehicle VehicleSection `json:"vehicle"`
	Seller  SellerSection  `json:"seller"`
	Photos  PhotoSection   `json:"photos"`
	Step    StepSection    `json:"step"`
}
