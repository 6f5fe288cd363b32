package moderation

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

// RegisterRoutes attaches content flag routes to the agent group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/content-flags", h.list)
	rg.POST("/content-flags", h.create)
	rg.GET("/content-flags/:id", h.get)
	rg.PUT("/content-flags/:id", h.update)
	rg.DELETE("/content-flags/:id", h.delete)
	rg.POST("/content-flags/:id/resolve", h.resolve)
}

func (h *Handler) list(c *gin.Context) {
	page := paging.FromQuery(c)
	f := ListFilter{Status: c.Query("status"), Severity: c.Query("severity"), ContentType: c.Query("contentType")}
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), f, page)
	if err != nil {
		writeError(c, err, "failed to list content flags")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	f, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create content flag")
		return
	}
	c.Set(middleware.ResourceIDKey, f.ID)
	respond.Created(c, f)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	f, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch content flag")
		return
	}
	respond.OK(c, f)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req UpdateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	f, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to update content flag")
		return
	}
	respond.OK(c, f)
}

func (h *Handler) resolve(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req ResolveRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	f, err := h.Svc.Resolve(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to resolve content flag")
		return
	}
	respond.OK(c, f)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete content flag")
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "content flag not found", nil)
	case errors.Is(err, validation.ErrInvalid):
		validation.Write(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
