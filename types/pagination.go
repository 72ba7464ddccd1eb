package types

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page is a limit/offset window over a listing.
type Page struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// Normalize clamps the window to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageInfo describes the returned window.
type PageInfo struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// PaginatedResponse wraps a listing with its window.
type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Pagination PageInfo    `json:"pagination"`
}

// NewPaginatedResponse builds the listing envelope.
func NewPaginatedResponse(items interface{}, page Page, total int) PaginatedResponse {
	return PaginatedResponse{
		Items: items,
		Pagination: PageInfo{
			Limit:   page.Limit,
			Offset:  page.Offset,
			Total:   total,
			HasMore: page.Offset+page.Limit < total,
		},
	}
}

// ErrorResponse documents the error body rendered by the error middleware.
type ErrorResponse struct {
	Type    string `json:"type" example:"NOT_FOUND"`
	Message string `json:"message" example:"Order not found"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
