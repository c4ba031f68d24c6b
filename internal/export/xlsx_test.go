package export

import (
	"bytes"
	"testing"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestOrderWorkbook(t *testing.T) {
	order := domain.OrderSubmission{
		Cart: []domain.CartLine{
			{
				ID:       "rice-5kg",
				Name:     "Basmati Rice 5kg",
				Price:    decimal.RequireFromString("12.50"),
				Quantity: 2,
			},
			{
				ID:       domain.OptionOnlineOrder,
				Name:     "Online Order",
				Price:    decimal.Zero,
				Quantity: 1,
				Special: &domain.SpecialPayload{Request: domain.OnlineOrderRequest{
					ItemName:   "Saffron",
					Quantity:   "1",
					OnlineLink: "https://example.com/saffron",
				}},
			},
		},
	}

	data, err := OrderWorkbook(order)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(OrderSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Item Name", "Quantity", "Price", "Total", "Special Data"}, rows[0])

	assert.Equal(t, "Basmati Rice 5kg", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
	assert.Equal(t, "12.5", rows[1][2])
	assert.Equal(t, "25", rows[1][3])

	// Special lines export a zero total and their request payload.
	assert.Equal(t, "Online Order", rows[2][0])
	assert.Equal(t, "0", rows[2][3])
	assert.Contains(t, rows[2][4], `"option":"online-order"`)
	assert.Contains(t, rows[2][4], "Saffron")
}

func TestWishlistWorkbook(t *testing.T) {
	wishlist := domain.WishlistSubmission{
		Items: []domain.WishlistItem{
			{
				ItemName: "Cardamom pods",
				Quantity: "2",
				Weight:   "100g",
				Category: domain.WishlistOnline,
				Link:     "https://example.com/cardamom",
			},
			{
				ItemName:     "Fresh paneer",
				Quantity:     "1",
				Weight:       "500g",
				Category:     domain.WishlistLocalStore,
				StoreAddress: "99 Old Market Road",
				StorePhone:   "5550001111",
			},
		},
	}

	data, err := WishlistWorkbook(wishlist)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(WishlistSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Link", rows[0][4])
	assert.Equal(t, "https://example.com/cardamom", rows[1][4])
	assert.Equal(t, "99 Old Market Road", rows[2][5])
}

func TestOrderWorkbookEmptyCart(t *testing.T) {
	data, err := OrderWorkbook(domain.OrderSubmission{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(OrderSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
