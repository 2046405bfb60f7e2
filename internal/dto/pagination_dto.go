package dto

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageQuery holds the page/limit query parameters of listing endpoints
type PageQuery struct {
	Page  int `form:"page" example:"1"`
	Limit int `form:"limit" example:"20"`
}

// Normalize applies defaults: page starts at 1, limit defaults to 20 and is capped at 100
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

// Offset returns the number of rows to skip
func (q PageQuery) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.Limit
}

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total" example:"42"`
	Page  int         `json:"page" example:"1"`
	Limit int         `json:"limit" example:"20"`
}
