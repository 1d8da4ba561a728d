package pagination

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Normalize clamps page and size into their valid ranges. Out-of-range
// values fall back rather than fail, so a request always paginates.
func (r *OffsetRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Size < 1 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
}
