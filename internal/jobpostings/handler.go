package jobpostings

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

// RegisterRoutes attaches job posting routes to the agent group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/job-postings", h.list)
	rg.POST("/job-postings", h.create)
	rg.GET("/job-postings/:id", h.get)
	rg.PUT("/job-postings/:id", h.update)
	rg.DELETE("/job-postings/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	page := paging.FromQuery(c)
	f := ListFilter{Status: c.Query("status"), EmploymentType: c.Query("employmentType")}
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), f, page)
	if err != nil {
		writeError(c, err, "failed to list job postings")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create job posting")
		return
	}
	c.Set(middleware.ResourceIDKey, p.ID)
	respond.Created(c, p)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	p, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch job posting")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req UpdateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to update job posting")
		return
	}
	respond.OK(c, p)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete job posting")
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job posting not found", nil)
	case errors.Is(err, validation.ErrInvalid):
		validation.Write(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
