package helpers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationValues(t *testing.T) {
	tests := []struct {
		name        string
		page, limit string
		want        Pagination
	}{
		{"defaults", "", "", Pagination{Page: 1, Limit: 10, Skip: 0}},
		{"clamped", "0", "1000", Pagination{Page: 1, Limit: 100, Skip: 0}},
		{"regular", "3", "20", Pagination{Page: 3, Limit: 20, Skip: 40}},
		{"negative", "-4", "-5", Pagination{Page: 1, Limit: 1, Skip: 0}},
		{"garbage", "abc", "x", Pagination{Page: 1, Limit: 10, Skip: 0}},
		{"numeric prefix", "2abc", "15.7", Pagination{Page: 2, Limit: 15, Skip: 15}},
		{"zero limit falls back", "1", "0", Pagination{Page: 1, Limit: 10, Skip: 0}},
		{"huge", "99999999999999", "5", Pagination{Page: 2147483647, Limit: 5, Skip: (2147483647 - 1) * 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			if tt.page != "" {
				q.Set("page", tt.page)
			}
			if tt.limit != "" {
				q.Set("limit", tt.limit)
			}
			assert.Equal(t, tt.want, ParsePaginationValues(q))
		})
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	data := []string{"a", "b", "c"}
	env := NewPaginatedResponse(data, 23, 2, 10, "x")

	assert.Equal(t, "success", env.Status)
	assert.Equal(t, 3, *env.Results)
	assert.Equal(t, map[string]interface{}{"x": data}, env.Data)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.True(t, env.Pagination.HasNext)
	assert.True(t, env.Pagination.HasPrev)
	assert.Equal(t, int64(23), env.Pagination.Total)
}

func TestNewPaginatedResponseTotalPages(t *testing.T) {
	for total := int64(0); total <= 25; total++ {
		for _, limit := range []int{1, 3, 10} {
			meta := NewPaginatedResponse([]int{}, total, 1, limit, "k").Pagination
			want := int((total + int64(limit) - 1) / int64(limit))
			assert.Equal(t, want, meta.TotalPages, "total=%d limit=%d", total, limit)
			assert.Equal(t, 1 < want, meta.HasNext)
			assert.False(t, meta.HasPrev)
		}
	}
}

func TestNewPaginatedResponseNilSlice(t *testing.T) {
	var data []int
	env := NewPaginatedResponse(data, 0, 1, 10, "items")
	assert.Equal(t, []int{}, env.Data.(map[string]interface{})["items"])
	assert.Equal(t, 0, *env.Results)
}

func TestParseDurationAndClock(t *testing.T) {
	assert.Equal(t, time.Minute, ParseDuration("1m", time.Second))
	assert.Equal(t, time.Second, ParseDuration("nope", time.Second))
	assert.True(t, IsClockTime("09:30"))
	assert.False(t, IsClockTime("9:30"))
	assert.False(t, IsClockTime("25:00"))
}
