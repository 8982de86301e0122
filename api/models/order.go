package models

import (
	"time"

	"github.com/SwiftKart/SwiftKart-Backend/services/currency"
	"github.com/SwiftKart/SwiftKart-Backend/services/order"
	"github.com/google/uuid"
)

type PlaceOrderParams struct {
	WalletID uuid.UUID `json:"wallet_id" binding:"required"`
}

type UpdateOrderStatusParams struct {
	Status string `json:"status" binding:"required"`
}

type OrderItemResponse struct {
	ProductID        uuid.UUID `json:"product_id"`
	Quantity         int32     `json:"quantity"`
	UnitPrice        int64     `json:"unit_price"`
	UnitPriceDisplay string    `json:"unit_price_display"`
	Currency         string    `json:"currency"`
}

type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	Reference    string              `json:"reference"`
	WalletID     uuid.UUID           `json:"wallet_id"`
	Status       string              `json:"status"`
	Total        int64               `json:"total"`
	TotalDisplay string              `json:"total_display"`
	Currency     string              `json:"currency"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func ToOrderResponse(m *order.OrderModel) OrderResponse {
	response := OrderResponse{
		ID:           m.ID,
		Reference:    m.Reference,
		WalletID:     m.WalletID,
		Status:       string(m.Status),
		Total:        m.Total,
		TotalDisplay: currency.MinorToDecimal(m.Currency, m.Total).String(),
		Currency:     m.Currency,
		Items:        make([]OrderItemResponse, 0, len(m.Items)),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	for _, item := range m.Items {
		response.Items = append(response.Items, OrderItemResponse{
			ProductID:        item.ProductID,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			UnitPriceDisplay: currency.MinorToDecimal(item.Currency, item.UnitPrice).String(),
			Currency:         item.Currency,
		})
	}
	return response
}

func ToOrderResponses(ms []*order.OrderModel) []OrderResponse {
	responses := make([]OrderResponse, 0, len(ms))
	for _, m := range ms {
		responses = append(responses, ToOrderResponse(m))
	}
	return responses
}
