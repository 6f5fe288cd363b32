package auditlogs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/shared/server/middleware"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/server/respond"
	"recruitedge-api/internal/shared/validation"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches audit log routes to the agent group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", h.list)
	rg.POST("/audit-logs", h.create)
	rg.GET("/audit-logs/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	page := paging.FromQuery(c)
	f := ListFilter{Agent: c.Query("agent"), Action: c.Query("action"), EntityType: c.Query("entityType")}
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), f, page)
	if err != nil {
		writeError(c, err, "failed to list audit logs")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	entry, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), c.ClientIP(), req)
	if err != nil {
		writeError(c, err, "failed to create audit log")
		return
	}
	c.Set(middleware.ResourceIDKey, entry.ID)
	respond.Created(c, entry)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	entry, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch audit log")
		return
	}
	respond.OK(c, entry)
}

func writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "audit log not found", nil)
	case errors.Is(err, validation.ErrInvalid):
		validation.Write(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
