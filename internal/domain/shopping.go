package domain

import (
	"fmt"
	"strings"
)

// ShoppingListFilename is the attachment name of the text export.
const ShoppingListFilename = "Purchases.txt"

// ShoppingListItem is one aggregated purchase: every cart line sharing
// the same ingredient name and unit, with amounts summed.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Line formats the item as "name - amount unit".
func (i ShoppingListItem) Line() string {
	return fmt.Sprintf("%s - %d %s", i.Name, i.Amount, i.MeasurementUnit)
}

// ShoppingList is the consolidated purchase list of a user's cart.
type ShoppingList []ShoppingListItem

// Text renders one newline-terminated line per item in list order.
// An empty list renders as an empty string.
func (l ShoppingList) Text() string {
	var b strings.Builder
	for _, item := range l {
		b.WriteString(item.Line())
		b.WriteByte('\n')
	}
	return b.String()
}

// ShoppingListPDFFilename is the attachment name of the PDF export.
const ShoppingListPDFFilename = "Purchases.pdf"
