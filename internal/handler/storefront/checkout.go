package storefront

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/serahk/pantrylane/internal/handler"
	"github.com/serahk/pantrylane/internal/service"
)

// CheckoutFlow is the confirmation flow surface the handlers need.
type CheckoutFlow interface {
	Start(ctx context.Context, sessionID string) (*service.CheckoutStatus, error)
	Submit(ctx context.Context, sessionID string, details domain.BuyerDetails) (*domain.SubmissionResult, error)
	Cancel(ctx context.Context, sessionID string) (*service.CheckoutStatus, error)
	Status(sessionID string) *service.CheckoutStatus
}

// CheckoutHandler handles the order confirmation routes
type CheckoutHandler struct {
	checkout CheckoutFlow
	logger   *slog.Logger
	secure   bool
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout CheckoutFlow, logger *slog.Logger, secure bool) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
		secure:   secure,
	}
}

// Start handles POST /checkout/start
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "checkout.Start", "failed to establish session"))
		return
	}

	status, err := h.checkout.Start(r.Context(), sessionID)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, status)
}

// Submit handles POST /checkout/submit
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var details domain.BuyerDetails
	if err := handler.DecodeJSON(r, &details); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "checkout.Submit", "failed to establish session"))
		return
	}

	result, err := h.checkout.Submit(r.Context(), sessionID, details)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	// A failed submission is still a well-formed response; the message is
	// shown to the buyer as-is.
	handler.RespondJSON(w, http.StatusOK, result)
}

// Cancel handles POST /checkout/cancel
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "checkout.Cancel", "failed to establish session"))
		return
	}

	status, err := h.checkout.Cancel(r.Context(), sessionID)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, status)
}

// Status handles GET /checkout
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "checkout.Status", "failed to establish session"))
		return
	}

	handler.RespondJSON(w, http.StatusOK, h.checkout.Status(sessionID))
}
