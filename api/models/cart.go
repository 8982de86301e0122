package models

import (
	"github.com/SwiftKart/SwiftKart-Backend/services/cart"
	"github.com/SwiftKart/SwiftKart-Backend/services/currency"
	"github.com/google/uuid"
)

type AddCartItemParams struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemParams struct {
	Quantity int32 `json:"quantity" binding:"required,gt=0"`
}

type CartItemResponse struct {
	ProductID        uuid.UUID `json:"product_id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Quantity         int32     `json:"quantity"`
	UnitPrice        int64     `json:"unit_price"`
	UnitPriceDisplay string    `json:"unit_price_display"`
	Currency         string    `json:"currency"`
	LineTotal        int64     `json:"line_total"`
}

type CartResponse struct {
	ID              uuid.UUID          `json:"id"`
	Currency        string             `json:"currency,omitempty"`
	Items           []CartItemResponse `json:"items"`
	Subtotal        int64              `json:"subtotal"`
	SubtotalDisplay string             `json:"subtotal_display,omitempty"`
}

func ToCartResponse(m *cart.CartModel) CartResponse {
	response := CartResponse{
		ID:       m.ID,
		Currency: m.Currency,
		Items:    make([]CartItemResponse, 0, len(m.Items)),
		Subtotal: m.Subtotal,
	}
	for _, item := range m.Items {
		response.Items = append(response.Items, CartItemResponse{
			ProductID:        item.ProductID,
			Slug:             item.Slug,
			Name:             item.Name,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			UnitPriceDisplay: currency.MinorToDecimal(item.Currency, item.UnitPrice).String(),
			Currency:         item.Currency,
			LineTotal:        item.LineTotal,
		})
	}
	if m.Currency != "" {
		response.SubtotalDisplay = currency.MinorToDecimal(m.Currency, m.Subtotal).String()
	}
	return response
}
