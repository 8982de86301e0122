package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/logging"
	"github.com/SwiftKart/SwiftKart-Backend/services/servicerror"
	"github.com/SwiftKart/SwiftKart-Backend/services/wallet"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// OrderService turns a customer's cart into a priced, stock-committed,
// paid order, or fails leaving every row untouched. The whole placement
// runs in one serializable transaction with row locks on the wallet and
// every product; the store retries the unit of work once if Postgres
// aborts it with a serialization conflict.
type OrderService struct {
	store  *db.Store
	logger *logging.Logger
	refs   *utils.ReferenceGenerator
}

func NewOrderService(store *db.Store, logger *logging.Logger, refs *utils.ReferenceGenerator) *OrderService {
	return &OrderService{
		store:  store,
		logger: logger,
		refs:   refs,
	}
}

type orderLine struct {
	productID uuid.UUID
	slug      string
	quantity  int32
	unitPrice int64
	currency  string
}

func (s *OrderService) CreateOrderFromCart(ctx context.Context, customerID int64, walletID uuid.UUID) (*OrderModel, error) {
	var placed *OrderModel

	err := s.store.ExecSerializableTx(ctx, func(q *db.Queries) error {
		placed = nil

		// Cart first: an empty cart is the cheapest rejection and the
		// one repeat checkouts hit.
		userCart, err := q.GetCartByCustomerID(ctx, customerID)
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.InvalidState("cart is empty")
		} else if err != nil {
			return err
		}
		cartItems, err := q.ListCartItems(ctx, userCart.ID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return servicerror.InvalidState("cart is empty")
		}

		lockedWallet, err := q.GetWalletForUpdate(ctx, walletID)
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("wallet")
		} else if err != nil {
			return err
		}
		if lockedWallet.CustomerID != customerID {
			return servicerror.Forbidden("wallet does not belong to this user")
		}

		// Cart items come back in ascending product-id order, so
		// concurrent placements lock product rows in the same sequence.
		var total int64
		lines := make([]orderLine, 0, len(cartItems))
		for _, item := range cartItems {
			product, err := q.GetProductForUpdate(ctx, item.ProductID)
			if errors.Is(err, sql.ErrNoRows) {
				return servicerror.NotFound("product")
			} else if err != nil {
				return err
			}

			if product.Currency != lockedWallet.Currency {
				return servicerror.InvalidState(fmt.Sprintf(
					"product %s is priced in %s, wallet currency is %s",
					product.Slug, product.Currency, lockedWallet.Currency))
			}
			if product.Stock < item.Quantity {
				return servicerror.InsufficientStock(product.Slug, int64(item.Quantity), int64(product.Stock))
			}

			total += product.Price * int64(item.Quantity)
			lines = append(lines, orderLine{
				productID: product.ID,
				slug:      product.Slug,
				quantity:  item.Quantity,
				unitPrice: product.Price,
				currency:  product.Currency,
			})
		}

		if lockedWallet.Balance < total {
			return servicerror.InsufficientBalance(total, lockedWallet.Balance)
		}

		// Commit phase. Every row involved is locked, so the guarded
		// updates below can only fail if something slipped past the
		// locks; they are mapped back to the same taxonomy regardless.
		for _, line := range lines {
			_, err := q.DecrementProductStock(ctx, db.DecrementProductStockParams{
				ID:       line.productID,
				Quantity: line.quantity,
			})
			if errors.Is(err, sql.ErrNoRows) {
				return servicerror.InsufficientStock(line.slug, int64(line.quantity), 0)
			} else if err != nil {
				return err
			}
		}

		if _, err := q.DebitWalletBalance(ctx, db.DebitWalletBalanceParams{
			ID:     lockedWallet.ID,
			Amount: total,
		}); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return servicerror.InsufficientBalance(total, lockedWallet.Balance)
			}
			return err
		}

		reference, err := s.refs.NewOrderReference()
		if err != nil {
			return err
		}

		created, err := q.CreateOrder(ctx, db.CreateOrderParams{
			ID:         uuid.New(),
			Reference:  reference,
			CustomerID: customerID,
			WalletID:   lockedWallet.ID,
			Status:     string(StatusConfirmed),
			Total:      total,
			Currency:   lockedWallet.Currency,
		})
		if err != nil {
			return err
		}

		items := make([]db.OrderItem, 0, len(lines))
		for _, line := range lines {
			item, err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:   created.ID,
				ProductID: line.productID,
				Quantity:  line.quantity,
				UnitPrice: line.unitPrice,
				Currency:  line.currency,
			})
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		metadata, _ := json.Marshal(map[string]string{"order_id": created.ID.String()})
		if _, err := q.CreateWalletTransaction(ctx, db.CreateWalletTransactionParams{
			ID:           uuid.New(),
			Type:         wallet.TransactionTypeOrderPayment,
			Amount:       total,
			Currency:     lockedWallet.Currency,
			FromWalletID: uuid.NullUUID{UUID: lockedWallet.ID, Valid: true},
			Description:  sql.NullString{String: "payment for order " + reference, Valid: true},
			Metadata:     pqtype.NullRawMessage{RawMessage: metadata, Valid: true},
		}); err != nil {
			return err
		}

		if err := q.ClearCart(ctx, userCart.ID); err != nil {
			return err
		}

		placed = ToOrderModel(created, items)
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "create order from cart")
	}

	s.logger.Info(fmt.Sprintf("placed order %s for customer %d: %d %s", placed.Reference, customerID, placed.Total, placed.Currency))
	return placed, nil
}

// GetOrder returns the order with its items; customers can only read
// their own orders.
func (s *OrderService) GetOrder(ctx context.Context, customerID int64, orderID uuid.UUID) (*OrderModel, error) {
	found, err := s.store.GetOrder(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, servicerror.NotFound("order")
	} else if err != nil {
		return nil, servicerror.Internal(err)
	}
	if found.CustomerID != customerID {
		return nil, servicerror.Forbidden("order does not belong to this user")
	}

	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, servicerror.Internal(err)
	}
	return ToOrderModel(found, items), nil
}

func (s *OrderService) ListOrders(ctx context.Context, customerID int64, limit, offset int32) ([]*OrderModel, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	orders, err := s.store.ListOrdersByCustomerID(ctx, db.ListOrdersByCustomerIDParams{
		CustomerID: customerID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, servicerror.Internal(err)
	}

	models := make([]*OrderModel, 0, len(orders))
	for _, o := range orders {
		models = append(models, ToOrderModel(o, nil))
	}
	return models, nil
}

// UpdateOrderStatus applies an administrative status transition,
// validated against the allowed-transition map. Placement is the only
// way an order comes into existence; this never touches items or total.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next Status) (*OrderModel, error) {
	if !IsValidStatus(next) {
		return nil, servicerror.InvalidArgument(fmt.Sprintf("unknown order status %q", next))
	}

	var updated db.Order
	err := s.store.ExecTx(ctx, func(q *db.Queries) error {
		current, err := q.GetOrderForUpdate(ctx, orderID)
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("order")
		} else if err != nil {
			return err
		}

		if !CanTransition(Status(current.Status), next) {
			return servicerror.InvalidState(fmt.Sprintf("cannot transition order from %s to %s", current.Status, next))
		}

		updated, err = q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{ID: orderID, Status: string(next)})
		return err
	})
	if err != nil {
		return nil, s.classify(err, "update order status")
	}

	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, servicerror.Internal(err)
	}
	return ToOrderModel(updated, items), nil
}

func (s *OrderService) classify(err error, op string) error {
	if _, ok := servicerror.AsServiceError(err); ok {
		return err
	}
	s.logger.Error(fmt.Sprintf("%s failed: %v", op, err))
	return servicerror.Internal(err)
}
