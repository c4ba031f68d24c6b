package domain

import "time"

// Preferred contact channels a buyer may choose from.
const (
	ContactText     = "Text"
	ContactWhatsApp = "WhatsApp"
	ContactCall     = "Call"
	ContactEmail    = "Email"
)

// BuyerDetails are the contact fields collected at order confirmation.
type BuyerDetails struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,min=10"`
	Address          string `json:"address" validate:"required,min=5"`
	PreferredContact string `json:"preferredContact" validate:"required,oneof=Text WhatsApp Call Email"`
	Feedback         string `json:"feedback,omitempty"`
}

// Validate checks the buyer-detail form.
func (d BuyerDetails) Validate() error {
	return Validate("order.details", d, map[string]string{
		"name":             "Name is required",
		"email":            "Please enter a valid email address",
		"phone":            "Phone number must be at least 10 digits",
		"address":          "Please enter a valid address",
		"preferredContact": "Please select a preferred contact method",
	})
}

// OrderSubmission is the finalized order handed to the submission sink.
// Constructed once at confirmation time and never mutated afterwards.
type OrderSubmission struct {
	BuyerDetails
	Cart      []CartLine `json:"cart"`
	OrderDate time.Time  `json:"orderDate"`
}

// Checkout flow states. A failed submission is not a terminal state: the
// flow returns to Collecting so the buyer can retry with cart and form
// contents intact.
const (
	CheckoutIdle       = "idle"
	CheckoutCollecting = "collecting"
	CheckoutSubmitting = "submitting"
	CheckoutSucceeded  = "succeeded"
)
