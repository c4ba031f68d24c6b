package domain

import "github.com/shopspring/decimal"

// CatalogItem is a purchasable product from the static catalog.
// Items are loaded once at startup and never mutated.
type CatalogItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Weight   string          `json:"weight,omitempty"`
	PackSize string          `json:"packSize,omitempty"`
}

// Category groups catalog items for browsing.
type Category struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Items []CatalogItem `json:"items"`
}

// Special option identifiers. These are the only valid values; each one
// carries its own required-field set (see special.go).
const (
	OptionLocalStore  = "local-store"
	OptionHomePickup  = "home-pickup"
	OptionOnlineOrder = "online-order"
)

// SpecialOption is a non-catalog service request: the store sources the
// item on the customer's behalf, so the price is a placeholder string
// determined out-of-band, not an amount.
type SpecialOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconType    string `json:"iconType"` // Store, Home or Online
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
}
