package resumes

import (
	"errors"
	"net/http"
	"time"

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

// RegisterRoutes attaches resume routes to the agent group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.create)
	rg.POST("/resumes/import", h.importFile)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.PUT("/resumes/:id/autosave", h.autosave)
	rg.DELETE("/resumes/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	page := paging.FromQuery(c)
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), ListFilter{Status: c.Query("status")}, page)
	if err != nil {
		writeError(c, err, "failed to list resumes")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) create(c *gin.Context) {
	var req CreateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create resume")
		return
	}
	c.Set(middleware.ResourceIDKey, res.ID)
	respond.Created(c, res)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	res, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req UpdateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	res, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, res)
}

func (h *Handler) autosave(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req UpdateRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	res, err := h.Svc.Autosave(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to autosave resume")
		return
	}
	respond.OK(c, AutosaveResponse{ID: res.ID, SavedAt: res.UpdatedAt.Format(time.RFC3339Nano)})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) importFile(c *gin.Context) {
	// Leave room for the multipart envelope around the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, ErrFileTooLarge, "")
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", []respond.FieldIssue{{Field: "file", Issue: "required"}})
		return
	}
	if fileHeader.Size > maxImportSize {
		writeError(c, ErrFileTooLarge, "")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	res, err := h.Svc.Import(c.Request.Context(), middleware.UserIDFromContext(c), fileHeader.Filename, file)
	if err != nil {
		writeError(c, err, "failed to import resume")
		return
	}
	c.Set(middleware.ResourceIDKey, res.ID)
	respond.Created(c, res)
}

func writeError(c *gin.Context, err error, msg string) {
	if usage.WriteLimitReached(c, err) {
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrFileTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file must be 10MB or smaller", []respond.FieldIssue{{Field: "file", Issue: "must be 10MB or smaller"}})
	case errors.Is(err, validation.ErrInvalid):
		validation.Write(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
