// Package export renders submissions as xlsx workbooks for the store's
// back office.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/serahk/pantrylane/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	OrderSheet    = "Order"
	WishlistSheet = "Wishlist"

	OrderFilename    = "order.xlsx"
	WishlistFilename = "wishlist.xlsx"
)

// OrderWorkbook builds the order spreadsheet: one row per cart line with
// the special request details serialized into the last column.
func OrderWorkbook(order domain.OrderSubmission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrderSheet); err != nil {
		return nil, fmt.Errorf("failed to name order sheet: %w", err)
	}

	header := []any{"Item Name", "Quantity", "Price", "Total", "Special Data"}
	if err := f.SetSheetRow(OrderSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, line := range order.Cart {
		special := ""
		if line.Special != nil {
			data, err := json.Marshal(line.Special)
			if err != nil {
				return nil, fmt.Errorf("failed to encode special data for %q: %w", line.ID, err)
			}
			special = string(data)
		}

		row := []any{
			line.Name,
			line.Quantity,
			line.Price.InexactFloat64(),
			line.Subtotal().InexactFloat64(),
			special,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(OrderSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize order workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WishlistWorkbook builds the wishlist spreadsheet with one column per
// item field. Fields foreign to an item's category stay blank.
func WishlistWorkbook(wishlist domain.WishlistSubmission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WishlistSheet); err != nil {
		return nil, fmt.Errorf("failed to name wishlist sheet: %w", err)
	}

	header := []any{
		"Item Name", "Quantity", "Weight", "Category",
		"Link", "Store Address", "Store Phone", "Pickup Address", "Pickup Phone",
	}
	if err := f.SetSheetRow(WishlistSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, item := range wishlist.Items {
		row := []any{
			item.ItemName,
			item.Quantity,
			item.Weight,
			item.Category,
			item.Link,
			item.StoreAddress,
			item.StorePhone,
			item.PickupAddress,
			item.PickupPhone,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(WishlistSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize wishlist workbook: %w", err)
	}
	return buf.Bytes(), nil
}
