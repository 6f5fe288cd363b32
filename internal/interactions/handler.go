package interactions

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/shared/server/middleware"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/server/respond"
)

// Handler exposes the caller's interaction history.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches GET /interactions to rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/interactions", h.list)
}

func (h *Handler) list(c *gin.Context) {
	page := paging.FromQuery(c)
	filter := Filter{
		Agent:  strings.TrimSpace(c.Query("agent")),
		Action: strings.TrimSpace(c.Query("action")),
	}
	items, err := h.Repo.ListByUser(c.Request.Context(), middleware.UserIDFromContext(c), filter, page.Limit, page.Offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list interactions", nil)
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}
