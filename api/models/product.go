package models

import (
	"time"

	"github.com/SwiftKart/SwiftKart-Backend/services/catalog"
	"github.com/SwiftKart/SwiftKart-Backend/services/currency"
	"github.com/google/uuid"
)

type CreateProductParams struct {
	Slug        string `json:"slug" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Currency    string `json:"currency" binding:"required,currency_code"`
	Stock       int32  `json:"stock" binding:"min=0"`
}

type UpdateProductParams struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Currency    string `json:"currency" binding:"required,currency_code"`
}

type RestockParams struct {
	Quantity int32 `json:"quantity" binding:"required,gt=0"`
}

type ProductResponse struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Currency     string    `json:"currency"`
	Stock        int32     `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToProductResponse(m *catalog.ProductModel) ProductResponse {
	return ProductResponse{
		ID:           m.ID,
		Slug:         m.Slug,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		PriceDisplay: currency.MinorToDecimal(m.Currency, m.Price).String(),
		Currency:     m.Currency,
		Stock:        m.Stock,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToProductResponses(ms []*catalog.ProductModel) []ProductResponse {
	responses := make([]ProductResponse, 0, len(ms))
	for _, m := range ms {
		responses = append(responses, ToProductResponse(m))
	}
	return responses
}
