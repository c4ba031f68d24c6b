package storefront

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/serahk/pantrylane/internal/handler"
	"github.com/serahk/pantrylane/internal/service"
)

// WishlistPipeline is the wishlist surface the handlers need.
type WishlistPipeline interface {
	SetUserDetails(ctx context.Context, sessionID string, details domain.UserDetails) error
	View(ctx context.Context, sessionID string) (*service.WishlistView, error)
	AddItem(ctx context.Context, sessionID string, item domain.WishlistItem) (*service.WishlistView, error)
	RemoveItem(ctx context.Context, sessionID string, index int) (*service.WishlistView, error)
	Submit(ctx context.Context, sessionID string, feedback string) (*domain.SubmissionResult, error)
}

// WishlistHandler handles the wishlist pipeline routes
type WishlistHandler struct {
	wishlist WishlistPipeline
	logger   *slog.Logger
	secure   bool
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlist WishlistPipeline, logger *slog.Logger, secure bool) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		logger:   logger,
		secure:   secure,
	}
}

// UserDetails handles POST /handoff/user-details
func (h *WishlistHandler) UserDetails(w http.ResponseWriter, r *http.Request) {
	var details domain.UserDetails
	if err := handler.DecodeJSON(r, &details); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "wishlist.UserDetails", "failed to establish session"))
		return
	}

	if err := h.wishlist.SetUserDetails(r.Context(), sessionID, details); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// View handles GET /wishlist. Without captured user details the buyer is
// sent back to the catalog entry point.
func (h *WishlistHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "wishlist.View", "failed to establish session"))
		return
	}

	view, err := h.wishlist.View(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrUserDetailsRequired) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, view)
}

// AddItem handles POST /wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item domain.WishlistItem
	if err := handler.DecodeJSON(r, &item); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "wishlist.AddItem", "failed to establish session"))
		return
	}

	view, err := h.wishlist.AddItem(r.Context(), sessionID, item)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, view)
}

// RemoveItem handles POST /wishlist/items/remove
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index int `json:"index"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "wishlist.RemoveItem", "failed to establish session"))
		return
	}

	view, err := h.wishlist.RemoveItem(r.Context(), sessionID, body.Index)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, view)
}

// Submit handles POST /wishlist/submit
func (h *WishlistHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "wishlist.Submit", "failed to establish session"))
		return
	}

	result, err := h.wishlist.Submit(r.Context(), sessionID, body.Feedback)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, result)
}
