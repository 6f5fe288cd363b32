package coverletters

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/shared/server/middleware"
	"recruitedge-api/internal/shared/server/paging"
	"recruitedge-api/internal/shared/server/respond"
	"recruitedge-api/internal/shared/validation"
	"recruitedge-api/internal/usage"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover letter routes to the agent group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cover-letters", h.list)
	rg.POST("/cover-letters", h.create)
	rg.POST("/cover-letters/generate", h.generate)
	rg.GET("/cover-letters/:id", h.get)
	rg.PUT("/cover-letters/:id", h.update)
	rg.DELETE("/cover-letters/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	page := paging.FromQuery(c)
	f := ListFilter{Status: c.Query("status"), Tone: c.Query("tone")}
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), f, page)
	if err != nil {
		writeError(c, err, "failed to list cover letters")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	cl, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create cover letter")
		return
	}
	c.Set(middleware.ResourceIDKey, cl.ID)
	respond.Created(c, cl)
}

func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	cl, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to generate cover letter")
		return
	}
	c.Set(middleware.ResourceIDKey, cl.ID)
	respond.Created(c, cl)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	cl, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch cover letter")
		return
	}
	respond.OK(c, cl)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req UpdateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	cl, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to update cover letter")
		return
	}
	respond.OK(c, cl)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete cover letter")
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error, msg string) {
	if usage.WriteLimitReached(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
	case errors.Is(err, validation.ErrInvalid):
		validation.Write(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
