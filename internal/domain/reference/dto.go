package reference

// SuggestRequest asks for typeahead candidates at one cascade stage.
type SuggestRequest struct {
	Category VehicleCategory `form:"category" binding:"required"`
	Stage    Stage           `form:"stage" binding:"required"`
	Query    string          `form:"q"`

	// Narrowing context for the later stages.
	BrandID int64 `form:"brand_id"`
	Year    int   `form:"year"`
	ModelID int64 `form:"model_id"`
}

// SuggestResponse carries the filtered candidate names for the stage.
type SuggestResponse struct {
	Stage       Stage    `json:"stage"`
	Suggestions []string `json:"suggestions"`
}

// ResolveRequest resolves a committed display name to its backing ID so the
// next stage can be queried.
type ResolveRequest struct {
	Category VehicleCategory `json:"category" binding:"required"`
	Stage    Stage           `json:"stage" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	BrandID  int64           `json:"brand_id"`
	Year     int             `json:"year"`
	ModelID  int64           `json:"model_id"`
}

// ResolveResponse returns the resolved identifier. Found is false when the
// typed text matches no known entity; the caller keeps the text but must
// treat the downstream stage as disabled.
type ResolveResponse struct {
	Stage Stage `json:"stage"`
	ID    int64 `json:"id"`
	Found bool  `json:"found"`
}
