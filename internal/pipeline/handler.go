package pipeline

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

// RegisterRoutes attaches candidate and pipeline routes to the agent group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/candidates", h.list)
	rg.POST("/candidates", h.create)
	rg.GET("/candidates/:id", h.get)
	rg.PUT("/candidates/:id", h.update)
	rg.PUT("/candidates/:id/stage", h.moveStage)
	rg.DELETE("/candidates/:id", h.delete)
	rg.GET("/pipeline/summary", h.summary)
}

func (h *Handler) list(c *gin.Context) {
	page := paging.FromQuery(c)
	f := ListFilter{Stage: c.Query("stage"), JobPostingID: c.Query("jobPostingId")}
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), f, page)
	if err != nil {
		writeError(c, err, "failed to list candidates")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	cand, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create candidate")
		return
	}
	c.Set(middleware.ResourceIDKey, cand.ID)
	respond.Created(c, cand)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	cand, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch candidate")
		return
	}
	respond.OK(c, cand)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req UpdateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	cand, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to update candidate")
		return
	}
	respond.OK(c, cand)
}

func (h *Handler) moveStage(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req StageRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	cand, err := h.Svc.MoveStage(c.Request.Context(), middleware.UserIDFromContext(c), id, req.Stage)
	if err != nil {
		writeError(c, err, "failed to move candidate")
		return
	}
	respond.OK(c, cand)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete candidate")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) summary(c *gin.Context) {
	s, err := h.Svc.Summary(c.Request.Context(), middleware.UserIDFromContext(c), c.Query("jobPostingId"))
	if err != nil {
		writeError(c, err, "failed to summarize pipeline")
		return
	}
	respond.OK(c, s)
}

func writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
	case errors.Is(err, validation.ErrInvalid):
		validation.Write(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
