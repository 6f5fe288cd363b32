package paging

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page holds the normalized limit/offset pair of a list request.
type Page struct {
	Limit  int
	Offset int
}

// FromQuery reads limit and offset from the query string. Missing or
// unparsable values fall back to defaults; limit is clamped to [1, MaxLimit].
func FromQuery(c *gin.Context) Page {
	return Normalize(atoi(c.Query("limit"), DefaultLimit), atoi(c.Query("offset"), 0))
}

// Normalize clamps limit and offset into their valid ranges.
func Normalize(limit, offset int) Page {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// Slice returns the window of items selected by the page.
func Slice[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

func atoi(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
