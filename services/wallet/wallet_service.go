package wallet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/SwiftKart/SwiftKart-Backend/services/currency"
	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/logging"
	"github.com/SwiftKart/SwiftKart-Backend/services/servicerror"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// WalletService maintains per-(owner, currency) balances. Every balance
// change goes through a single database transaction holding a row lock
// on the affected wallet(s), and appends a journal entry in the same
// transaction.
type WalletService struct {
	store  *db.Store
	logger *logging.Logger
}

func NewWalletService(store *db.Store, logger *logging.Logger) *WalletService {
	return &WalletService{
		store:  store,
		logger: logger,
	}
}

func (w *WalletService) CreateWallet(ctx context.Context, ownerID int64, currencyCode string, initialBalance int64) (*WalletModel, error) {
	if !currency.IsValidCode(currencyCode) {
		return nil, servicerror.InvalidArgument("currency must be a three-letter ISO code")
	}
	if initialBalance < 0 {
		return nil, servicerror.InvalidArgument("initial balance cannot be negative")
	}

	created, err := w.store.CreateWallet(ctx, db.CreateWalletParams{
		ID:         uuid.New(),
		CustomerID: ownerID,
		Currency:   currencyCode,
		Balance:    initialBalance,
	})
	if db.IsDuplicate(err) {
		return nil, servicerror.Duplicate("wallet", fmt.Sprintf("wallet already exists for currency %s", currencyCode))
	} else if err != nil {
		w.logger.Error(fmt.Sprintf("error creating wallet: %v", err))
		return nil, servicerror.Internal(err)
	}

	w.logger.Info(fmt.Sprintf("created %s wallet %v for customer %d", currencyCode, created.ID, ownerID))
	return ToWalletModel(created), nil
}

// IncreaseBalance credits the wallet by amount. The read-modify-write
// runs under FOR UPDATE so concurrent mutations serialize on the row.
func (w *WalletService) IncreaseBalance(ctx context.Context, ownerID int64, currencyCode string, amount int64) (*WalletModel, error) {
	if amount <= 0 {
		return nil, servicerror.InvalidArgument("amount must be positive")
	}

	var updated db.Wallet
	err := w.store.ExecTx(ctx, func(q *db.Queries) error {
		locked, err := q.GetWalletByCustomerAndCurrencyForUpdate(ctx, db.GetWalletByCustomerAndCurrencyForUpdateParams{
			CustomerID: ownerID,
			Currency:   currencyCode,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("wallet")
		} else if err != nil {
			return err
		}

		updated, err = q.CreditWalletBalance(ctx, db.CreditWalletBalanceParams{ID: locked.ID, Amount: amount})
		if err != nil {
			return err
		}

		_, err = q.CreateWalletTransaction(ctx, db.CreateWalletTransactionParams{
			ID:         uuid.New(),
			Type:       TransactionTypeCredit,
			Amount:     amount,
			Currency:   currencyCode,
			ToWalletID: uuid.NullUUID{UUID: locked.ID, Valid: true},
		})
		return err
	})
	if err != nil {
		return nil, w.classify(err, "increase balance")
	}

	return ToWalletModel(updated), nil
}

// DecreaseBalance debits the wallet by amount. The balance check and
// the write happen under the same row lock, so two concurrent debits
// can never both pass the check against the same funds.
func (w *WalletService) DecreaseBalance(ctx context.Context, ownerID int64, currencyCode string, amount int64) (*WalletModel, error) {
	if amount <= 0 {
		return nil, servicerror.InvalidArgument("amount must be positive")
	}

	var updated db.Wallet
	err := w.store.ExecTx(ctx, func(q *db.Queries) error {
		locked, err := q.GetWalletByCustomerAndCurrencyForUpdate(ctx, db.GetWalletByCustomerAndCurrencyForUpdateParams{
			CustomerID: ownerID,
			Currency:   currencyCode,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("wallet")
		} else if err != nil {
			return err
		}

		if locked.Balance < amount {
			return servicerror.InsufficientBalance(amount, locked.Balance)
		}

		updated, err = q.DebitWalletBalance(ctx, db.DebitWalletBalanceParams{ID: locked.ID, Amount: amount})
		if errors.Is(err, sql.ErrNoRows) {
			// The guard cannot fail while we hold the lock; treat it as
			// a concurrent modification all the same.
			return servicerror.InsufficientBalance(amount, locked.Balance)
		} else if err != nil {
			return err
		}

		_, err = q.CreateWalletTransaction(ctx, db.CreateWalletTransactionParams{
			ID:           uuid.New(),
			Type:         TransactionTypeDebit,
			Amount:       amount,
			Currency:     currencyCode,
			FromWalletID: uuid.NullUUID{UUID: locked.ID, Valid: true},
		})
		return err
	})
	if err != nil {
		return nil, w.classify(err, "decrease balance")
	}

	return ToWalletModel(updated), nil
}

// Transfer moves amount between two owners' wallets of the same
// currency. Both rows are locked in ascending wallet-id order in one
// statement, so opposing transfers cannot deadlock. Either both legs
// land or neither does.
func (w *WalletService) Transfer(ctx context.Context, fromOwnerID, toOwnerID int64, currencyCode string, amount int64) error {
	if amount <= 0 {
		return servicerror.InvalidArgument("amount must be positive")
	}
	if fromOwnerID == toOwnerID {
		return servicerror.InvalidArgument("cannot transfer to the same owner")
	}

	err := w.store.ExecTx(ctx, func(q *db.Queries) error {
		wallets, err := q.LockWalletsForTransfer(ctx, db.LockWalletsForTransferParams{
			FromCustomerID: fromOwnerID,
			ToCustomerID:   toOwnerID,
			Currency:       currencyCode,
		})
		if err != nil {
			return err
		}

		var source, destination *db.Wallet
		for i := range wallets {
			switch wallets[i].CustomerID {
			case fromOwnerID:
				source = &wallets[i]
			case toOwnerID:
				destination = &wallets[i]
			}
		}
		if source == nil || destination == nil {
			return servicerror.NotFound("wallet")
		}

		if source.Balance < amount {
			return servicerror.InsufficientBalance(amount, source.Balance)
		}

		if _, err := q.DebitWalletBalance(ctx, db.DebitWalletBalanceParams{ID: source.ID, Amount: amount}); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return servicerror.InsufficientBalance(amount, source.Balance)
			}
			return err
		}
		if _, err := q.CreditWalletBalance(ctx, db.CreditWalletBalanceParams{ID: destination.ID, Amount: amount}); err != nil {
			return err
		}

		metadata, _ := json.Marshal(map[string]int64{
			"from_owner_id": fromOwnerID,
			"to_owner_id":   toOwnerID,
		})
		_, err = q.CreateWalletTransaction(ctx, db.CreateWalletTransactionParams{
			ID:           uuid.New(),
			Type:         TransactionTypeTransfer,
			Amount:       amount,
			Currency:     currencyCode,
			FromWalletID: uuid.NullUUID{UUID: source.ID, Valid: true},
			ToWalletID:   uuid.NullUUID{UUID: destination.ID, Valid: true},
			Metadata:     pqtype.NullRawMessage{RawMessage: metadata, Valid: true},
		})
		return err
	})
	if err != nil {
		return w.classify(err, "transfer")
	}

	w.logger.Info(fmt.Sprintf("transferred %d %s from customer %d to customer %d", amount, currencyCode, fromOwnerID, toOwnerID))
	return nil
}

func (w *WalletService) DeleteWallet(ctx context.Context, walletID uuid.UUID) error {
	err := w.store.ExecTx(ctx, func(q *db.Queries) error {
		locked, err := q.GetWalletForUpdate(ctx, walletID)
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("wallet")
		} else if err != nil {
			return err
		}

		if locked.Balance > 0 {
			return servicerror.Conflict("cannot delete wallet with positive balance")
		}

		_, err = q.DeleteWallet(ctx, walletID)
		return err
	})
	if err != nil {
		return w.classify(err, "delete wallet")
	}
	return nil
}

// GetBalance is a read-only convenience: it reports 0 for a wallet that
// does not exist.
func (w *WalletService) GetBalance(ctx context.Context, ownerID int64, currencyCode string) (int64, error) {
	found, err := w.store.GetWalletByCustomerAndCurrency(ctx, db.GetWalletByCustomerAndCurrencyParams{
		CustomerID: ownerID,
		Currency:   currencyCode,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	} else if err != nil {
		return 0, servicerror.Internal(err)
	}
	return found.Balance, nil
}

func (w *WalletService) GetWallets(ctx context.Context, ownerID int64) ([]*WalletModel, error) {
	wallets, err := w.store.GetWalletsByCustomerID(ctx, ownerID)
	if err != nil {
		return nil, servicerror.Internal(err)
	}
	return ToWalletModels(wallets), nil
}

func (w *WalletService) ListTransactions(ctx context.Context, ownerID int64, limit, offset int32) ([]*TransactionModel, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := w.store.ListWalletTransactionsByCustomerID(ctx, db.ListWalletTransactionsByCustomerIDParams{
		CustomerID: ownerID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, servicerror.Internal(err)
	}
	models := make([]*TransactionModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, ToTransactionModel(row))
	}
	return models, nil
}

// classify keeps already-typed errors as they are and wraps everything
// else so no store detail leaks past the service boundary.
func (w *WalletService) classify(err error, op string) error {
	if _, ok := servicerror.AsServiceError(err); ok {
		return err
	}
	w.logger.Error(fmt.Sprintf("%s failed: %v", op, err))
	return servicerror.Internal(err)
}
