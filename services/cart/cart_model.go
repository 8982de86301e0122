package cart

import (
	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/google/uuid"
)

type CartItemModel struct {
	ProductID uuid.UUID `json:"product_id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Quantity  int32     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Currency  string    `json:"currency"`
	LineTotal int64     `json:"line_total"`
}

// CartModel is the service-level cart view. Subtotal reflects current
// product prices; the authoritative total is computed again at order
// placement time.
type CartModel struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID int64           `json:"customer_id"`
	Currency   string          `json:"currency,omitempty"`
	Items      []CartItemModel `json:"items"`
	Subtotal   int64           `json:"subtotal"`
}

func toCartModel(c db.Cart, rows []db.ListCartItemsWithProductsRow) *CartModel {
	model := &CartModel{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		Items:      make([]CartItemModel, 0, len(rows)),
	}
	for _, row := range rows {
		lineTotal := row.Price * int64(row.Quantity)
		model.Items = append(model.Items, CartItemModel{
			ProductID: row.ProductID,
			Slug:      row.Slug,
			Name:      row.Name,
			Quantity:  row.Quantity,
			UnitPrice: row.Price,
			Currency:  row.Currency,
			LineTotal: lineTotal,
		})
		model.Subtotal += lineTotal
		model.Currency = row.Currency
	}
	return model
}
