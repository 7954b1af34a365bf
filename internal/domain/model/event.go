// Package model contains domain models passed between layers.
package model

// Event is a provider listing copied verbatim for one request/response cycle.
// Missing provider fields are empty strings, never omitted.
type Event struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Start   string `json:"start"` // provider local date, YYYY-MM-DD
	URL     string `json:"url"`
	Image   string `json:"image"`
	Venue   string `json:"venue"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// SearchQuery selects events by location and optional day.
type SearchQuery struct {
	Location string
	Date     string // YYYY-MM-DD, optional
}

// SearchResult is what one events search produces.
type SearchResult struct {
	Events        []Event `json:"events"`
	TotalPages    int     `json:"totalPages"`
	TotalElements int     `json:"totalElements"`
	Page          int     `json:"page"`
	PageSize      int     `json:"pageSize"`
	// ProviderPages is the number of provider requests issued.
	ProviderPages int `json:"-"`
}

// Paginate slices the accumulated events into the caller's page.
// size <= 0 returns r unchanged.
func (r SearchResult) Paginate(page, size int) SearchResult {
	if size <= 0 {
		return r
	}
	out := r
	out.Page = page
	out.PageSize = size
	out.TotalPages = (len(r.Events) + size - 1) / size

	// Compare page counts first so page*size cannot overflow.
	if page >= out.TotalPages {
		out.Events = []Event{}
		return out
	}
	start := page * size
	if start >= len(r.Events) {
		out.Events = []Event{}
		return out
	}
	end := min(start+size, len(r.Events))
	out.Events = r.Events[start:end]
	return out
}
