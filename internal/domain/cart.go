package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// CartService provides business logic for shopping cart operations.
// Implementations are session-scoped: every call is keyed by the caller's
// session ID, and no two lines in one cart share an identifier.
type CartService interface {
	// AddItem adds a catalog item to the cart, or increments quantity if a
	// line with the same id already exists.
	AddItem(ctx context.Context, sessionID string, item CatalogItem, quantity int) (*CartSummary, error)

	// AddSpecial adds a special-option line with its request payload. If a
	// line for the option already exists, quantity is incremented and the
	// payload replaced with the newest submission.
	AddSpecial(ctx context.Context, sessionID string, option SpecialOption, req SpecialRequest) (*CartSummary, error)

	// UpdateQuantity applies delta to a line's quantity, floored at zero.
	// A resulting quantity of zero removes the line. No-op if the line is
	// absent.
	UpdateQuantity(ctx context.Context, sessionID string, lineID string, delta int) (*CartSummary, error)

	// RemoveLine deletes the line for lineID, if present.
	RemoveLine(ctx context.Context, sessionID string, lineID string) (*CartSummary, error)

	// Summary returns the cart with all lines and calculated totals.
	Summary(ctx context.Context, sessionID string) (*CartSummary, error)

	// Clear removes every line from the cart.
	Clear(ctx context.Context, sessionID string) error
}

// CartLine is one entry in a cart: a catalog item with a real price, or a
// special-option request priced at zero until quoted.
type CartLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Weight   string          `json:"weight,omitempty"`
	PackSize string          `json:"packSize,omitempty"`
	Quantity int             `json:"quantity"`
	Special  *SpecialPayload `json:"specialData,omitempty"`
}

// Subtotal is price × quantity. Special lines contribute zero; their price
// is not known yet.
func (l CartLine) Subtotal() decimal.Decimal {
	if l.Special != nil {
		return decimal.Zero
	}
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSummary aggregates cart lines with calculated totals.
type CartSummary struct {
	Lines     []CartLine      `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}
