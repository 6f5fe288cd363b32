package billing

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
	// Usage serves GET /usage alongside the billing routes when set.
	Usage *usage.Handler
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, usageHandler *usage.Handler) *Handler {
	return &Handler{Svc: svc, Usage: usageHandler}
}

// RegisterRoutes attaches subscription, invoice and usage routes to the agent group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions", h.listSubscriptions)
	rg.POST("/subscriptions", h.createSubscription)
	rg.GET("/subscriptions/:id", h.getSubscription)
	rg.PUT("/subscriptions/:id", h.updateSubscription)
	rg.DELETE("/subscriptions/:id", h.deleteSubscription)
	rg.POST("/subscriptions/:id/cancel", h.cancelSubscription)

	rg.GET("/invoices", h.listInvoices)
	rg.POST("/invoices", h.createInvoice)
	rg.GET("/invoices/:id", h.getInvoice)
	rg.PUT("/invoices/:id", h.updateInvoice)
	rg.DELETE("/invoices/:id", h.deleteInvoice)
	rg.POST("/invoices/:id/pay", h.payInvoice)

	if h.Usage != nil {
		h.Usage.RegisterRoutes(rg)
	}
}

func (h *Handler) listSubscriptions(c *gin.Context) {
	page := paging.FromQuery(c)
	f := SubscriptionFilter{Status: c.Query("status")}
	items, err := h.Svc.ListSubscriptions(c.Request.Context(), middleware.UserIDFromContext(c), f, page)
	if err != nil {
		writeError(c, err, "failed to list subscriptions")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) createSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	sub, err := h.Svc.CreateSubscription(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create subscription")
		return
	}
	c.Set(middleware.ResourceIDKey, sub.ID)
	respond.Created(c, sub)
}

func (h *Handler) getSubscription(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	sub, err := h.Svc.GetSubscription(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch subscription")
		return
	}
	respond.OK(c, sub)
}

func (h *Handler) updateSubscription(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req UpdateSubscriptionRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	sub, err := h.Svc.UpdateSubscription(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to update subscription")
		return
	}
	respond.OK(c, sub)
}

func (h *Handler) cancelSubscription(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req CancelRequest
	if c.Request.ContentLength != 0 && !validation.BindJSON(c, &req) {
		return
	}
	sub, err := h.Svc.CancelSubscription(c.Request.Context(), middleware.UserIDFromContext(c), id, req.Immediately)
	if err != nil {
		writeError(c, err, "failed to cancel subscription")
		return
	}
	respond.OK(c, sub)
}

func (h *Handler) deleteSubscription(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.DeleteSubscription(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete subscription")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) listInvoices(c *gin.Context) {
	page := paging.FromQuery(c)
	f := InvoiceFilter{Status: c.Query("status"), SubscriptionID: c.Query("subscriptionId")}
	items, err := h.Svc.ListInvoices(c.Request.Context(), middleware.UserIDFromContext(c), f, page)
	if err != nil {
		writeError(c, err, "failed to list invoices")
		return
	}
	respond.List(c, items, page.Limit, page.Offset)
}

func (h *Handler) createInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	inv, err := h.Svc.CreateInvoice(c.Request.Context(), middleware.UserIDFromContext(c), req)
	if err != nil {
		writeError(c, err, "failed to create invoice")
		return
	}
	c.Set(middleware.ResourceIDKey, inv.ID)
	respond.Created(c, inv)
}

func (h *Handler) getInvoice(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	inv, err := h.Svc.GetInvoice(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to fetch invoice")
		return
	}
	respond.OK(c, inv)
}

func (h *Handler) updateInvoice(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	var req UpdateInvoiceRequest
	if !validation.BindJSON(c, &req) {
		return
	}
	inv, err := h.Svc.UpdateInvoice(c.Request.Context(), middleware.UserIDFromContext(c), id, req)
	if err != nil {
		writeError(c, err, "failed to update invoice")
		return
	}
	respond.OK(c, inv)
}

func (h *Handler) payInvoice(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	inv, err := h.Svc.PayInvoice(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to pay invoice")
		return
	}
	respond.OK(c, inv)
}

func (h *Handler) deleteInvoice(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResourceIDKey, id)
	if err := h.Svc.DeleteInvoice(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete invoice")
		return
	}
	respond.NoContent(c)
}

func writeError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrSubscriptionNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "subscription not found", nil)
	case errors.Is(err, ErrInvoiceNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "invoice not found", nil)
	case errors.Is(err, validation.ErrInvalid):
		validation.Write(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
