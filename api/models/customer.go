package models

import (
	"time"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
)

type CreateCustomerParams struct {
	Email string `json:"email" binding:"required,email"`
	Tag   string `json:"tag"`
}

type CustomerResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Tag       string    `json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCustomerResponse(u db.User) CustomerResponse {
	return CustomerResponse{
		ID:        u.ID,
		Email:     u.Email,
		Tag:       u.Tag.String,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
