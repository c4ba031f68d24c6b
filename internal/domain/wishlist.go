package domain

import (
	"strings"
	"time"
)

// Wishlist sourcing categories. Each category decides which of the item's
// optional fields are meaningful.
const (
	WishlistLocalStore = "Local Store"
	WishlistOnline     = "Online"
	WishlistHomePickup = "Home Pickup"
)

// WishlistItem is one entry on a buyer's wishlist. ItemName, Quantity,
// Weight and Category are always required; the remaining fields belong to
// exactly one category and are blanked for any other.
type WishlistItem struct {
	ItemName string `json:"itemName" validate:"required,min=2"`
	Quantity string `json:"quantity" validate:"required"`
	Weight   string `json:"weight" validate:"required"`
	Category string `json:"category" validate:"required,oneof='Local Store' 'Online' 'Home Pickup'"`

	// Online
	Link string `json:"link,omitempty"`

	// Local Store
	StoreAddress string `json:"storeAddress,omitempty"`
	StorePhone   string `json:"storePhone,omitempty"`

	// Home Pickup
	PickupAddress string `json:"pickupAddress,omitempty"`
	PickupPhone   string `json:"pickupPhone,omitempty"`
}

// Normalize trims every field and strips the category-specific fields that
// do not belong to the item's category, so a category switch never leaves
// stale data behind.
func (i WishlistItem) Normalize() WishlistItem {
	n := WishlistItem{
		ItemName: strings.TrimSpace(i.ItemName),
		Quantity: strings.TrimSpace(i.Quantity),
		Weight:   strings.TrimSpace(i.Weight),
		Category: strings.TrimSpace(i.Category),
	}

	switch n.Category {
	case WishlistOnline:
		n.Link = strings.TrimSpace(i.Link)
	case WishlistLocalStore:
		n.StoreAddress = strings.TrimSpace(i.StoreAddress)
		n.StorePhone = strings.TrimSpace(i.StorePhone)
	case WishlistHomePickup:
		n.PickupAddress = strings.TrimSpace(i.PickupAddress)
		n.PickupPhone = strings.TrimSpace(i.PickupPhone)
	}

	return n
}

// Validate checks the wishlist item form. Callers should Normalize first.
func (i WishlistItem) Validate() error {
	return Validate("wishlist.item", i, map[string]string{
		"itemName": "Item name must be at least 2 characters",
		"quantity": "Quantity is required",
		"weight":   "Weight is required",
		"category": "Please select a category",
	})
}

// UserDetails identify the wishlist owner. Collected once up front; a
// wishlist cannot be started without them.
type UserDetails struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10"`
	Address  string `json:"address" validate:"required,min=5"`
	Feedback string `json:"feedback,omitempty"`
}

// Validate checks the user-detail form.
func (d UserDetails) Validate() error {
	return Validate("wishlist.details", d, map[string]string{
		"name":    "Name is required",
		"email":   "Please enter a valid email address",
		"phone":   "Phone number must be at least 10 digits",
		"address": "Please enter a valid address",
	})
}

// WishlistSubmission is the finalized wishlist handed to the submission sink.
type WishlistSubmission struct {
	UserDetails UserDetails    `json:"userDetails"`
	Items       []WishlistItem `json:"items"`
	Date        time.Time      `json:"date"`
}
