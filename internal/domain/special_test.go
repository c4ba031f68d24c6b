package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecialRequest(t *testing.T) {
	fullForm := SpecialForm{
		ItemName:     "Fresh paneer",
		TotalWeight:  "500g",
		Quantity:     "1",
		StoreAddress: "99 Old Market Road",
		StorePhone:   "5550001111",
		HomeAddress:  "12 Harbor Lane",
		HomePhone:    "5552223333",
		OnlineLink:   "https://example.com/paneer",
	}

	tests := []struct {
		name       string
		option     string
		form       SpecialForm
		wantErr    bool
		wantFields []string
		check      func(t *testing.T, req SpecialRequest)
	}{
		{
			name:   "local store keeps only its fields",
			option: OptionLocalStore,
			form:   fullForm,
			check: func(t *testing.T, req SpecialRequest) {
				r, ok := req.(LocalStoreRequest)
				require.True(t, ok)
				assert.Equal(t, "99 Old Market Road", r.StoreAddress)
			},
		},
		{
			name:   "home pickup keeps only its fields",
			option: OptionHomePickup,
			form:   fullForm,
			check: func(t *testing.T, req SpecialRequest) {
				r, ok := req.(HomePickupRequest)
				require.True(t, ok)
				assert.Equal(t, "12 Harbor Lane", r.HomeAddress)
			},
		},
		{
			name:   "online order keeps only its fields",
			option: OptionOnlineOrder,
			form:   fullForm,
			check: func(t *testing.T, req SpecialRequest) {
				r, ok := req.(OnlineOrderRequest)
				require.True(t, ok)
				assert.Equal(t, "https://example.com/paneer", r.OnlineLink)
			},
		},
		{
			name:    "unknown option",
			option:  "teleport",
			form:    fullForm,
			wantErr: true,
		},
		{
			name:       "local store missing required fields",
			option:     OptionLocalStore,
			form:       SpecialForm{ItemName: "Fresh paneer"},
			wantErr:    true,
			wantFields: []string{"totalWeight", "quantity", "storeAddress", "storePhone"},
		},
		{
			name:       "online order rejects a bad link",
			option:     OptionOnlineOrder,
			form:       SpecialForm{ItemName: "Paneer", Quantity: "1", OnlineLink: "not-a-url"},
			wantErr:    true,
			wantFields: []string{"onlineLink"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseSpecialRequest(tt.option, tt.form)
			if tt.wantErr {
				require.Error(t, err)
				if len(tt.wantFields) > 0 {
					fields := GetValidationFields(err)
					require.NotNil(t, fields)
					for _, f := range tt.wantFields {
						assert.Contains(t, fields, f)
					}
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.option, req.OptionID())
			if tt.check != nil {
				tt.check(t, req)
			}
		})
	}
}

func TestParseSpecialRequestTrimsFields(t *testing.T) {
	req, err := ParseSpecialRequest(OptionOnlineOrder, SpecialForm{
		ItemName:   "  Saffron  ",
		Quantity:   " 1 ",
		OnlineLink: " https://example.com/saffron ",
	})
	require.NoError(t, err)

	r, ok := req.(OnlineOrderRequest)
	require.True(t, ok)
	assert.Equal(t, "Saffron", r.ItemName)
	assert.Equal(t, "https://example.com/saffron", r.OnlineLink)
}

func TestSpecialRequestMessages(t *testing.T) {
	_, err := ParseSpecialRequest(OptionLocalStore, SpecialForm{})
	fields := GetValidationFields(err)
	require.NotNil(t, fields)
	assert.Equal(t, "Item name is required", fields["itemName"])
	assert.Equal(t, "Store address is required", fields["storeAddress"])

	_, err = ParseSpecialRequest(OptionOnlineOrder, SpecialForm{ItemName: "x", Quantity: "1", OnlineLink: "nope"})
	fields = GetValidationFields(err)
	require.NotNil(t, fields)
	assert.Equal(t, "Please enter a valid URL", fields["onlineLink"])
}

func TestSpecialPayloadRoundTrip(t *testing.T) {
	payload := SpecialPayload{Request: HomePickupRequest{
		ItemName:    "Clay pot biryani",
		TotalWeight: "2kg",
		Quantity:    "1",
		HomeAddress: "12 Harbor Lane",
		HomePhone:   "5552223333",
	}}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"option":"home-pickup"`)

	var decoded SpecialPayload
	require.NoError(t, json.Unmarshal(data, &decoded))

	r, ok := decoded.Request.(HomePickupRequest)
	require.True(t, ok)
	assert.Equal(t, "Clay pot biryani", r.ItemName)
	assert.Equal(t, "5552223333", r.HomePhone)
}

func TestSpecialPayloadUnknownOption(t *testing.T) {
	var decoded SpecialPayload
	err := json.Unmarshal([]byte(`{"option": "teleport", "itemName": "x"}`), &decoded)
	assert.Error(t, err)
}
