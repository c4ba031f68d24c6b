package routes

import (
	"github.com/serahk/pantrylane/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for storefront routes
type StorefrontDeps struct {
	// Catalog browsing
	CatalogHandler *storefront.CatalogHandler

	// Shopping cart and special-option intake
	CartHandler *storefront.CartHandler

	// Order confirmation flow
	CheckoutHandler *storefront.CheckoutHandler

	// Wishlist pipeline
	WishlistHandler *storefront.WishlistHandler
}
