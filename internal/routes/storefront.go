package routes

import (
	"github.com/serahk/pantrylane/internal/router"
)

// RegisterStorefrontRoutes registers all buyer-facing routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Catalog browsing
	r.Get("/catalog/categories", deps.CatalogHandler.Categories)
	r.Get("/catalog/items", deps.CatalogHandler.Items)
	r.Get("/catalog/special-options", deps.CatalogHandler.SpecialOptions)

	// Shopping cart
	r.Get("/cart", deps.CartHandler.View)
	r.Post("/cart/items", deps.CartHandler.Add)
	r.Post("/cart/items/update", deps.CartHandler.Update)
	r.Post("/cart/items/remove", deps.CartHandler.Remove)
	r.Post("/cart/special", deps.CartHandler.AddSpecial)

	// Order confirmation flow
	r.Get("/checkout", deps.CheckoutHandler.Status)
	r.Post("/checkout/start", deps.CheckoutHandler.Start)
	r.Post("/checkout/submit", deps.CheckoutHandler.Submit)
	r.Post("/checkout/cancel", deps.CheckoutHandler.Cancel)

	// Wishlist pipeline
	r.Post("/handoff/user-details", deps.WishlistHandler.UserDetails)
	r.Get("/wishlist", deps.WishlistHandler.View)
	r.Post("/wishlist/items", deps.WishlistHandler.AddItem)
	r.Post("/wishlist/items/remove", deps.WishlistHandler.RemoveItem)
	r.Post("/wishlist/submit", deps.WishlistHandler.Submit)
}
