package wallet

import (
	"time"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/google/uuid"
)

const (
	TransactionTypeCredit       = "credit"
	TransactionTypeDebit        = "debit"
	TransactionTypeTransfer     = "transfer"
	TransactionTypeOrderPayment = "order_payment"
)

// WalletModel is the service-level view of a wallet. Balance is an
// integer in the currency's smallest unit.
type WalletModel struct {
	ID         uuid.UUID `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Currency   string    `json:"currency"`
	Balance    int64     `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToWalletModel(w db.Wallet) *WalletModel {
	return &WalletModel{
		ID:         w.ID,
		CustomerID: w.CustomerID,
		Currency:   w.Currency,
		Balance:    w.Balance,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func ToWalletModels(ws []db.Wallet) []*WalletModel {
	models := make([]*WalletModel, 0, len(ws))
	for _, w := range ws {
		models = append(models, ToWalletModel(w))
	}
	return models
}

type TransactionModel struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	Amount       int64      `json:"amount"`
	Currency     string     `json:"currency"`
	FromWalletID *uuid.UUID `json:"from_wallet_id,omitempty"`
	ToWalletID   *uuid.UUID `json:"to_wallet_id,omitempty"`
	Description  string     `json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToTransactionModel(t db.WalletTransaction) *TransactionModel {
	m := &TransactionModel{
		ID:        t.ID,
		Type:      t.Type,
		Amount:    t.Amount,
		Currency:  t.Currency,
		CreatedAt: t.CreatedAt,
	}
	if t.FromWalletID.Valid {
		from := t.FromWalletID.UUID
		m.FromWalletID = &from
	}
	if t.ToWalletID.Valid {
		to := t.ToWalletID.UUID
		m.ToWalletID = &to
	}
	if t.Description.Valid {
		m.Description = t.Description.String
	}
	return m
}
