package helpers

import (
	"math"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// Pagination is a normalized page request
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

// ParsePagination reads page and limit from the request query. It never fails.
func ParsePagination(c *gin.Context) Pagination {
	return ParsePaginationValues(c.Request.URL.Query())
}

// ParsePaginationValues normalizes page/limit query values.
// Malformed or zero values fall back to the defaults, limit is clamped to [1, MaxPageSize].
func ParsePaginationValues(query url.Values) Pagination {
	page := leadingInt(query.Get("page"))
	if page == 0 {
		page = DefaultPage
	}
	page = max(DefaultPage, page)

	limit := leadingInt(query.Get("limit"))
	if limit == 0 {
		limit = DefaultPageSize
	}
	limit = min(MaxPageSize, max(1, limit))

	return Pagination{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

// leadingInt parses the leading signed decimal prefix of s after optional whitespace,
// so "12abc" is 12 and "abc" is 0. Values past the int32 range saturate.
func leadingInt(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n < math.MaxInt32 {
			n = n*10 + int(s[i]-'0')
		}
	}
	n = min(n, math.MaxInt32)
	if neg {
		return -n
	}
	return n
}

// NewPaginationMeta computes page bookkeeping for a listing of total items
func NewPaginationMeta(total int64, page, limit int) dto.PaginationMeta {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return dto.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// NewPaginatedResponse wraps one page of data under key in the success envelope
func NewPaginatedResponse[T any](data []T, total int64, page, limit int, key string) dto.Envelope {
	if data == nil {
		data = []T{}
	}
	results := len(data)
	meta := NewPaginationMeta(total, page, limit)
	return dto.Envelope{
		Status:     dto.StatusSuccess,
		Results:    &results,
		Pagination: &meta,
		Data:       map[string]interface{}{key: data},
	}
}
