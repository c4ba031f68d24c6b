package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SpecialRequest is the structured payload carried by a special-option cart
// line. It is a closed set: one variant per option, each declaring its own
// required fields, instead of a single bag of optional strings.
type SpecialRequest interface {
	// OptionID returns the special option this request belongs to.
	OptionID() string

	// Validate checks the variant's required-field set.
	Validate() error
}

// LocalStoreRequest asks the store to source an item from a named local shop.
type LocalStoreRequest struct {
	ItemName     string `json:"itemName" validate:"required"`
	TotalWeight  string `json:"totalWeight" validate:"required"`
	Quantity     string `json:"quantity" validate:"required"`
	StoreAddress string `json:"storeAddress" validate:"required,min=5"`
	StorePhone   string `json:"storePhone" validate:"required,min=10"`
}

func (r LocalStoreRequest) OptionID() string { return OptionLocalStore }

func (r LocalStoreRequest) Validate() error {
	return Validate("special.local-store", r, map[string]string{
		"itemName":     "Item name is required",
		"totalWeight":  "Total weight is required",
		"quantity":     "Quantity is required",
		"storeAddress": "Store address is required",
		"storePhone":   "Store phone number is required",
	})
}

// HomePickupRequest asks the store to collect an item from the customer's home.
type HomePickupRequest struct {
	ItemName    string `json:"itemName" validate:"required"`
	TotalWeight string `json:"totalWeight" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	HomeAddress string `json:"homeAddress" validate:"required,min=5"`
	HomePhone   string `json:"homePhone" validate:"required,min=10"`
}

func (r HomePickupRequest) OptionID() string { return OptionHomePickup }

func (r HomePickupRequest) Validate() error {
	return Validate("special.home-pickup", r, map[string]string{
		"itemName":    "Item name is required",
		"totalWeight": "Total weight is required",
		"quantity":    "Quantity is required",
		"homeAddress": "Home address is required",
		"homePhone":   "Home phone number is required",
	})
}

// OnlineOrderRequest asks the store to order an item from a product URL.
type OnlineOrderRequest struct {
	ItemName    string `json:"itemName" validate:"required"`
	TotalWeight string `json:"totalWeight,omitempty"`
	Quantity    string `json:"quantity" validate:"required"`
	OnlineLink  string `json:"onlineLink" validate:"required,url,min=5"`
}

func (r OnlineOrderRequest) OptionID() string { return OptionOnlineOrder }

func (r OnlineOrderRequest) Validate() error {
	return Validate("special.online-order", r, map[string]string{
		"itemName":   "Item name is required",
		"quantity":   "Quantity is required",
		"onlineLink": "Please enter a valid URL",
	})
}

// SpecialForm is the flat field set submitted by the intake form. Which
// fields matter is decided by the selected option; the rest are ignored,
// so switching options never leaves stale data on the parsed request.
type SpecialForm struct {
	ItemName     string `json:"itemName"`
	TotalWeight  string `json:"totalWeight"`
	Quantity     string `json:"quantity"`
	StoreAddress string `json:"storeAddress"`
	StorePhone   string `json:"storePhone"`
	HomeAddress  string `json:"homeAddress"`
	HomePhone    string `json:"homePhone"`
	OnlineLink   string `json:"onlineLink"`
}

func (f SpecialForm) trimmed() SpecialForm {
	return SpecialForm{
		ItemName:     strings.TrimSpace(f.ItemName),
		TotalWeight:  strings.TrimSpace(f.TotalWeight),
		Quantity:     strings.TrimSpace(f.Quantity),
		StoreAddress: strings.TrimSpace(f.StoreAddress),
		StorePhone:   strings.TrimSpace(f.StorePhone),
		HomeAddress:  strings.TrimSpace(f.HomeAddress),
		HomePhone:    strings.TrimSpace(f.HomePhone),
		OnlineLink:   strings.TrimSpace(f.OnlineLink),
	}
}

// ParseSpecialRequest builds and validates the variant for the selected
// option from the submitted form fields. Fields irrelevant to the option
// are dropped, never carried along.
func ParseSpecialRequest(option string, form SpecialForm) (SpecialRequest, error) {
	form = form.trimmed()

	var req SpecialRequest
	switch option {
	case OptionLocalStore:
		req = LocalStoreRequest{
			ItemName:     form.ItemName,
			TotalWeight:  form.TotalWeight,
			Quantity:     form.Quantity,
			StoreAddress: form.StoreAddress,
			StorePhone:   form.StorePhone,
		}
	case OptionHomePickup:
		req = HomePickupRequest{
			ItemName:    form.ItemName,
			TotalWeight: form.TotalWeight,
			Quantity:    form.Quantity,
			HomeAddress: form.HomeAddress,
			HomePhone:   form.HomePhone,
		}
	case OptionOnlineOrder:
		req = OnlineOrderRequest{
			ItemName:    form.ItemName,
			TotalWeight: form.TotalWeight,
			Quantity:    form.Quantity,
			OnlineLink:  form.OnlineLink,
		}
	default:
		return nil, Invalid("special.parse", fmt.Sprintf("unknown special option: %s", option))
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// SpecialPayload wraps a SpecialRequest for JSON round-tripping. The wire
// form is the variant's fields plus an "option" discriminator, so a cart
// snapshot written to the session store can be restored to the right type.
type SpecialPayload struct {
	Request SpecialRequest
}

func (p SpecialPayload) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(p.Request)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["option"] = p.Request.OptionID()

	return json.Marshal(fields)
}

func (p *SpecialPayload) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Option string `json:"option"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	switch envelope.Option {
	case OptionLocalStore:
		var r LocalStoreRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		p.Request = r
	case OptionHomePickup:
		var r HomePickupRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		p.Request = r
	case OptionOnlineOrder:
		var r OnlineOrderRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		p.Request = r
	default:
		return fmt.Errorf("unknown special option in payload: %q", envelope.Option)
	}

	return nil
}
