package paging

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query string
		want  Page
	}{
		{query: "", want: Page{Limit: 20, Offset: 0}},
		{query: "?limit=5&offset=10", want: Page{Limit: 5, Offset: 10}},
		{query: "?limit=500", want: Page{Limit: 100, Offset: 0}},
		{query: "?limit=0&offset=-3", want: Page{Limit: 1, Offset: 0}},
		{query: "?limit=-7", want: Page{Limit: 1, Offset: 0}},
		{query: "?limit=abc", want: Page{Limit: 20, Offset: 0}},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/items"+tt.query, nil)
		if got := FromQuery(c); got != tt.want {
			t.Fatalf("FromQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := Slice(items, Page{Limit: 2, Offset: 1}); len(got) != 2 || got[0] != 2 {
		t.Fatalf("unexpected window: %v", got)
	}
	if got := Slice(items, Page{Limit: 10, Offset: 4}); len(got) != 1 || got[0] != 5 {
		t.Fatalf("unexpected tail: %v", got)
	}
	if got := Slice(items, Page{Limit: 10, Offset: 9}); len(got) != 0 {
		t.Fatalf("expected empty window, got %v", got)
	}
}
