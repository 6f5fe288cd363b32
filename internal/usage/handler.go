package usage

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitedge-api/internal/shared/server/middleware"
	"recruitedge-api/internal/shared/server/respond"
)

// Handler exposes usage endpoints.
type Handler struct {
	Svc *Service
	// AllowReset enables POST /usage/reset, meant for dev environments.
	AllowReset bool
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, allowReset bool) *Handler {
	return &Handler{Svc: svc, AllowReset: allowReset}
}

// RegisterRoutes attaches usage routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usage", h.getUsage)
	if h.AllowReset {
		rg.POST("/usage/reset", h.resetUsage)
	}
}

func (h *Handler) getUsage(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to fetch usage")
		return
	}
	respond.OK(c, u)
}

func (h *Handler) resetUsage(c *gin.Context) {
	u, err := h.Svc.Reset(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		writeError(c, err, "failed to reset usage")
		return
	}
	respond.OK(c, u)
}

// WriteLimitReached responds 429 when err is a usage limit error and reports
// whether it did.
func WriteLimitReached(c *gin.Context, err error) bool {
	if !errors.Is(err, ErrLimitReached) {
		return false
	}
	var meta any
	var le *LimitError
	if errors.As(err, &le) {
		meta = gin.H{
			"plan":     le.Usage.Plan,
			"limit":    le.Usage.Limit,
			"used":     le.Usage.Used,
			"resetsAt": le.Usage.ResetsAt,
		}
	}
	respond.ErrorMeta(c, http.StatusTooManyRequests, "limit_reached", "usage limit reached for this period", meta)
	return true
}

func writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
