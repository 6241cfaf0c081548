package list_appointments

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/compawny/scheduling-service/internal/domain"
)

// parseListParams reads page, size and sort query parameters. The sort
// value is "field" or "field,direction", e.g. "startTime,desc".
func parseListParams(query url.Values) domain.ListParams {
	params := domain.ListParams{
		Page:      1,
		PageSize:  domain.DefaultPageSize,
		SortBy:    domain.SortByStartTime,
		Direction: domain.SortAsc,
	}

	if v := query.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			params.Page = page
		}
	}
	if v := query.Get("size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			params.PageSize = size
		}
	}
	if v := query.Get("sort"); v != "" {
		field, dir, found := strings.Cut(v, ",")
		params.SortBy = field
		if found && strings.EqualFold(dir, "desc") {
			params.Direction = domain.SortDesc
		}
	}

	return params
}
