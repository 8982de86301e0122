package models

import (
	"time"

	"github.com/SwiftKart/SwiftKart-Backend/services/currency"
	"github.com/SwiftKart/SwiftKart-Backend/services/wallet"
	"github.com/google/uuid"
)

type CreateWalletParams struct {
	Currency       string `json:"currency" binding:"required,currency_code"`
	InitialBalance int64  `json:"initial_balance" binding:"min=0"`
}

type BalanceChangeParams struct {
	Currency string `json:"currency" binding:"required,currency_code"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

type TransferParams struct {
	ToCustomerID int64  `json:"to_customer_id" binding:"required"`
	Currency     string `json:"currency" binding:"required,currency_code"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
}

// WalletResponse exposes the balance twice: the raw minor-unit integer
// for machines and a formatted decimal string for display.
type WalletResponse struct {
	ID             uuid.UUID `json:"id"`
	Currency       string    `json:"currency"`
	Balance        int64     `json:"balance"`
	BalanceDisplay string    `json:"balance_display"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToWalletResponse(m *wallet.WalletModel) WalletResponse {
	return WalletResponse{
		ID:             m.ID,
		Currency:       m.Currency,
		Balance:        m.Balance,
		BalanceDisplay: currency.MinorToDecimal(m.Currency, m.Balance).String(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToWalletResponses(ms []*wallet.WalletModel) []WalletResponse {
	responses := make([]WalletResponse, 0, len(ms))
	for _, m := range ms {
		responses = append(responses, ToWalletResponse(m))
	}
	return responses
}

type BalanceResponse struct {
	Currency       string `json:"currency"`
	Balance        int64  `json:"balance"`
	BalanceDisplay string `json:"balance_display"`
}

func ToBalanceResponse(currencyCode string, balance int64) BalanceResponse {
	return BalanceResponse{
		Currency:       currencyCode,
		Balance:        balance,
		BalanceDisplay: currency.MinorToDecimal(currencyCode, balance).String(),
	}
}

type TransactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	Amount        int64      `json:"amount"`
	AmountDisplay string     `json:"amount_display"`
	Currency      string     `json:"currency"`
	FromWalletID  *uuid.UUID `json:"from_wallet_id,omitempty"`
	ToWalletID    *uuid.UUID `json:"to_wallet_id,omitempty"`
	Description   string     `json:"description,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToTransactionResponses(ms []*wallet.TransactionModel) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(ms))
	for _, m := range ms {
		responses = append(responses, TransactionResponse{
			ID:            m.ID,
			Type:          m.Type,
			Amount:        m.Amount,
			AmountDisplay: currency.MinorToDecimal(m.Currency, m.Amount).String(),
			Currency:      m.Currency,
			FromWalletID:  m.FromWalletID,
			ToWalletID:    m.ToWalletID,
			Description:   m.Description,
			CreatedAt:     m.CreatedAt,
		})
	}
	return responses
}
