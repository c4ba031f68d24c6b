package storefront

import (
	"log/slog"
	"net/http"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/serahk/pantrylane/internal/handler"
)

// CartHandler handles all cart-related storefront routes
type CartHandler struct {
	cartService domain.CartService
	catalog     CatalogStore
	logger      *slog.Logger
	secure      bool
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService domain.CartService, catalog CatalogStore, logger *slog.Logger, secure bool) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		catalog:     catalog,
		logger:      logger,
		secure:      secure,
	}
}

// cartResponse is the cart summary plus a hint for the storefront to slide
// the cart view open after a successful mutation.
type cartResponse struct {
	*domain.CartSummary
	OpenCart bool `json:"openCart"`
}

// View handles GET /cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "cart.View", "failed to establish session"))
		return
	}

	summary, err := h.cartService.Summary(r.Context(), sessionID)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, cartResponse{CartSummary: summary})
}

// Add handles POST /cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "cart.Add", "failed to establish session"))
		return
	}

	item, err := h.catalog.Item(body.ItemID)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	summary, err := h.cartService.AddItem(r.Context(), sessionID, item, body.Quantity)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, cartResponse{CartSummary: summary, OpenCart: true})
}

// Update handles POST /cart/items/update
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID string `json:"itemId"`
		Delta  int    `json:"delta"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "cart.Update", "failed to establish session"))
		return
	}

	summary, err := h.cartService.UpdateQuantity(r.Context(), sessionID, body.ItemID, body.Delta)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, cartResponse{CartSummary: summary, OpenCart: true})
}

// Remove handles POST /cart/items/remove
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID string `json:"itemId"`
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "cart.Remove", "failed to establish session"))
		return
	}

	summary, err := h.cartService.RemoveLine(r.Context(), sessionID, body.ItemID)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, cartResponse{CartSummary: summary, OpenCart: true})
}

// AddSpecial handles POST /cart/special
func (h *CartHandler) AddSpecial(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Option string `json:"option"`
		domain.SpecialForm
	}
	if err := handler.DecodeJSON(r, &body); err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	option, err := h.catalog.SpecialOption(body.Option)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Invalid("cart.AddSpecial", "Unknown special option"))
		return
	}

	req, err := domain.ParseSpecialRequest(option.ID, body.SpecialForm)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	sessionID, err := EnsureSession(w, r, h.secure)
	if err != nil {
		handler.RespondError(w, r, h.logger, domain.Internal(err, "cart.AddSpecial", "failed to establish session"))
		return
	}

	summary, err := h.cartService.AddSpecial(r.Context(), sessionID, option, req)
	if err != nil {
		handler.RespondError(w, r, h.logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, cartResponse{CartSummary: summary, OpenCart: true})
}
