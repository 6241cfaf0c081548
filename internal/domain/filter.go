package domain

// SortDirection for paginated listings.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sortable fields accepted by ListParams.
const (
	SortByStartTime = "startTime"
	SortByCreatedAt = "createdAt"
	SortByStatus    = "status"
)

// ListParams describes pagination and ordering of the full listing.
type ListParams struct {
	Page      int // 1-based
	PageSize  int
	SortBy    string
	Direction SortDirection
}

// Normalize fills defaults and clamps the page size.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = SortByStartTime
	}
	if p.Direction == "" {
		p.Direction = SortAsc
	}
}

// Offset converts page/pageSize to a row offset.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
