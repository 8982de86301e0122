package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/logging"
	"github.com/SwiftKart/SwiftKart-Backend/services/servicerror"
	"github.com/google/uuid"
)

// CartService manages a single pending cart per customer. The cart is
// created lazily on the first add and only ever emptied, never deleted.
// All items in a cart must share one currency; the check happens at
// add time against the items already present.
type CartService struct {
	store  *db.Store
	logger *logging.Logger
}

func NewCartService(store *db.Store, logger *logging.Logger) *CartService {
	return &CartService{
		store:  store,
		logger: logger,
	}
}

func (s *CartService) AddItem(ctx context.Context, customerID int64, productID uuid.UUID, quantity int32) (*CartModel, error) {
	if quantity <= 0 {
		return nil, servicerror.InvalidArgument("quantity must be positive")
	}

	var model *CartModel
	err := s.store.ExecTx(ctx, func(q *db.Queries) error {
		product, err := q.GetProduct(ctx, productID)
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("product")
		} else if err != nil {
			return err
		}

		userCart, err := q.GetCartByCustomerID(ctx, customerID)
		if errors.Is(err, sql.ErrNoRows) {
			userCart, err = q.CreateCart(ctx, db.CreateCartParams{ID: uuid.New(), CustomerID: customerID})
		}
		if err != nil {
			return err
		}

		existing, err := q.ListCartItemsWithProducts(ctx, userCart.ID)
		if err != nil {
			return err
		}
		for _, row := range existing {
			if row.Currency != product.Currency {
				return servicerror.InvalidState(fmt.Sprintf(
					"cart items are priced in %s, product %s is priced in %s",
					row.Currency, product.Slug, product.Currency))
			}
		}

		if _, err := q.UpsertCartItem(ctx, db.UpsertCartItemParams{
			CartID:    userCart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}); err != nil {
			return err
		}

		rows, err := q.ListCartItemsWithProducts(ctx, userCart.ID)
		if err != nil {
			return err
		}
		model = toCartModel(userCart, rows)
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "add cart item")
	}
	return model, nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, customerID int64, productID uuid.UUID, quantity int32) (*CartModel, error) {
	if quantity <= 0 {
		return nil, servicerror.InvalidArgument("quantity must be positive")
	}

	var model *CartModel
	err := s.store.ExecTx(ctx, func(q *db.Queries) error {
		userCart, err := q.GetCartByCustomerID(ctx, customerID)
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("cart")
		} else if err != nil {
			return err
		}

		_, err = q.UpdateCartItemQuantity(ctx, db.UpdateCartItemQuantityParams{
			CartID:    userCart.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("cart item")
		} else if err != nil {
			return err
		}

		rows, err := q.ListCartItemsWithProducts(ctx, userCart.ID)
		if err != nil {
			return err
		}
		model = toCartModel(userCart, rows)
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "update cart item")
	}
	return model, nil
}

func (s *CartService) RemoveItem(ctx context.Context, customerID int64, productID uuid.UUID) (*CartModel, error) {
	var model *CartModel
	err := s.store.ExecTx(ctx, func(q *db.Queries) error {
		userCart, err := q.GetCartByCustomerID(ctx, customerID)
		if errors.Is(err, sql.ErrNoRows) {
			return servicerror.NotFound("cart")
		} else if err != nil {
			return err
		}

		removed, err := q.DeleteCartItem(ctx, db.DeleteCartItemParams{CartID: userCart.ID, ProductID: productID})
		if err != nil {
			return err
		}
		if removed == 0 {
			return servicerror.NotFound("cart item")
		}

		rows, err := q.ListCartItemsWithProducts(ctx, userCart.ID)
		if err != nil {
			return err
		}
		model = toCartModel(userCart, rows)
		return nil
	})
	if err != nil {
		return nil, s.classify(err, "remove cart item")
	}
	return model, nil
}

// GetCart returns an empty cart view when the customer has never added
// an item; the cart row itself is created lazily.
func (s *CartService) GetCart(ctx context.Context, customerID int64) (*CartModel, error) {
	userCart, err := s.store.GetCartByCustomerID(ctx, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return &CartModel{CustomerID: customerID, Items: []CartItemModel{}}, nil
	} else if err != nil {
		return nil, servicerror.Internal(err)
	}

	rows, err := s.store.ListCartItemsWithProducts(ctx, userCart.ID)
	if err != nil {
		return nil, servicerror.Internal(err)
	}
	return toCartModel(userCart, rows), nil
}

func (s *CartService) ClearCart(ctx context.Context, customerID int64) error {
	userCart, err := s.store.GetCartByCustomerID(ctx, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	} else if err != nil {
		return servicerror.Internal(err)
	}

	if err := s.store.ClearCart(ctx, userCart.ID); err != nil {
		return servicerror.Internal(err)
	}
	return nil
}

func (s *CartService) classify(err error, op string) error {
	if _, ok := servicerror.AsServiceError(err); ok {
		return err
	}
	s.logger.Error(fmt.Sprintf("%s failed: %v", op, err))
	return servicerror.Internal(err)
}
