package monitor

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

// RegisterRoutes attaches health check routes to the agent group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health-checks", h.list)
	rg.POST("/health-checks", h.create)
	rg.POST("/health-checks/run", h.run)
	rg.GET("/health-checks/:id", h.get)
	rg.DELETE("/health-checks/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	page := paging.FromQuery(c)
	f := ListFilter{Component: c.Query("component"), Status: c.Query("status")}
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), f, page)
	if err != nil {
		writeError(c, err, "failed to list health checks")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	hc, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create health check")
		return
	}
	c.Set(middleware.ResourceIDKey, hc.ID)
	respond.Created(c, hc)
}

func (h *Handler) run(c *gin.Context) {
	result, err := h.Svc.Run(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to run health checks")
		return
	}
	respond.OK(c, result)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	hc, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch health check")
		return
	}
	respond.OK(c, hc)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete health check")
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "health check not found", nil)
	case errors.Is(err, validation.ErrInvalid):
		validation.Write(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
