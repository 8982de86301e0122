package catalog

import (
	"database/sql"
	"time"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/google/uuid"
)

type ProductModel struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int32     `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToProductModel(p db.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description.String,
		Price:       p.Price,
		Currency:    p.Currency,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProductModels(ps []db.Product) []*ProductModel {
	models := make([]*ProductModel, 0, len(ps))
	for _, p := range ps {
		models = append(models, ToProductModel(p))
	}
	return models
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
