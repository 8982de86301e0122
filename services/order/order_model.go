package order

import (
	"time"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/google/uuid"
)

type OrderItemModel struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Currency  string    `json:"currency"`
}

// OrderModel carries the order header plus its frozen line items.
// Items never change after placement; unit prices are the product
// prices at the instant the order was placed.
type OrderModel struct {
	ID         uuid.UUID        `json:"id"`
	Reference  string           `json:"reference"`
	CustomerID int64            `json:"customer_id"`
	WalletID   uuid.UUID        `json:"wallet_id"`
	Status     Status           `json:"status"`
	Total      int64            `json:"total"`
	Currency   string           `json:"currency"`
	Items      []OrderItemModel `json:"items"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func ToOrderModel(o db.Order, items []db.OrderItem) *OrderModel {
	model := &OrderModel{
		ID:         o.ID,
		Reference:  o.Reference,
		CustomerID: o.CustomerID,
		WalletID:   o.WalletID,
		Status:     Status(o.Status),
		Total:      o.Total,
		Currency:   o.Currency,
		Items:      make([]OrderItemModel, 0, len(items)),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, item := range items {
		model.Items = append(model.Items, OrderItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Currency:  item.Currency,
		})
	}
	return model
}
