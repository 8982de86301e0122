package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	"github.com/SwiftKart/SwiftKart-Backend/services/currency"
	"github.com/SwiftKart/SwiftKart-Backend/services/monitoring/logging"
	"github.com/SwiftKart/SwiftKart-Backend/services/redis"
	"github.com/SwiftKart/SwiftKart-Backend/services/servicerror"
	"github.com/google/uuid"
)

// Cache policies for catalog reads, declared as data so the whole
// caching contract sits next to the operations it covers. Writes sweep
// the listed invalidation patterns.
var (
	ProductByIDCachePolicy = redis.CachePolicy{
		KeyTemplate:          "catalog:product:id:%s",
		TTL:                  10 * time.Minute,
		InvalidationPatterns: []string{"catalog:product:id:%s"},
	}
	ProductBySlugCachePolicy = redis.CachePolicy{
		KeyTemplate:          "catalog:product:slug:%s",
		TTL:                  10 * time.Minute,
		InvalidationPatterns: []string{"catalog:product:slug:%s"},
	}
	ProductListCachePolicy = redis.CachePolicy{
		KeyTemplate:          "catalog:products:%d:%d",
		TTL:                  time.Minute,
		InvalidationPatterns: []string{"catalog:products:*"},
	}
)

// CatalogService owns product CRUD and cached reads. The redis client
// is optional; without it every read goes straight to the store.
type CatalogService struct {
	store  *db.Store
	logger *logging.Logger
	cache  *redis.RedisService
}

func NewCatalogService(store *db.Store, logger *logging.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

func NewCatalogServiceWithCache(store *db.Store, logger *logging.Logger, cache *redis.RedisService) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
		cache:  cache,
	}
}

type CreateProductInput struct {
	Slug        string
	Name        string
	Description string
	Price       int64
	Currency    string
	Stock       int32
}

func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductModel, error) {
	if input.Slug == "" || input.Name == "" {
		return nil, servicerror.InvalidArgument("slug and name are required")
	}
	if input.Price < 0 {
		return nil, servicerror.InvalidArgument("price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, servicerror.InvalidArgument("stock cannot be negative")
	}
	if !currency.IsValidCode(input.Currency) {
		return nil, servicerror.InvalidArgument("currency must be a three-letter ISO code")
	}

	created, err := s.store.CreateProduct(ctx, db.CreateProductParams{
		ID:          uuid.New(),
		Slug:        input.Slug,
		Name:        input.Name,
		Description: toNullString(input.Description),
		Price:       input.Price,
		Currency:    input.Currency,
		Stock:       input.Stock,
	})
	if db.IsDuplicate(err) {
		return nil, servicerror.Duplicate("product", fmt.Sprintf("product with slug %q already exists", input.Slug))
	} else if err != nil {
		s.logger.Error(fmt.Sprintf("error creating product: %v", err))
		return nil, servicerror.Internal(err)
	}

	s.sweepProductCaches(ctx, created)
	return ToProductModel(created), nil
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
	Currency    string
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductModel, error) {
	if input.Name == "" {
		return nil, servicerror.InvalidArgument("name is required")
	}
	if input.Price < 0 {
		return nil, servicerror.InvalidArgument("price cannot be negative")
	}
	if !currency.IsValidCode(input.Currency) {
		return nil, servicerror.InvalidArgument("currency must be a three-letter ISO code")
	}

	updated, err := s.store.UpdateProduct(ctx, db.UpdateProductParams{
		ID:          id,
		Name:        input.Name,
		Description: toNullString(input.Description),
		Price:       input.Price,
		Currency:    input.Currency,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, servicerror.NotFound("product")
	} else if err != nil {
		s.logger.Error(fmt.Sprintf("error updating product: %v", err))
		return nil, servicerror.Internal(err)
	}

	s.sweepProductCaches(ctx, updated)
	return ToProductModel(updated), nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.store.GetProduct(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return servicerror.NotFound("product")
	} else if err != nil {
		return servicerror.Internal(err)
	}

	deleted, err := s.store.DeleteProduct(ctx, id)
	if db.IsForeignKeyViolation(err) {
		return servicerror.Conflict("product is referenced by existing orders or carts")
	} else if err != nil {
		s.logger.Error(fmt.Sprintf("error deleting product: %v", err))
		return servicerror.Internal(err)
	}
	if deleted == 0 {
		return servicerror.NotFound("product")
	}

	s.sweepProductCaches(ctx, product)
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductModel, error) {
	var cached ProductModel
	key := ProductByIDCachePolicy.Key(id)
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := s.store.GetProduct(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, servicerror.NotFound("product")
	} else if err != nil {
		return nil, servicerror.Internal(err)
	}

	model := ToProductModel(product)
	s.cacheSet(ctx, key, model, ProductByIDCachePolicy.TTL)
	return model, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*ProductModel, error) {
	var cached ProductModel
	key := ProductBySlugCachePolicy.Key(slug)
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := s.store.GetProductBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, servicerror.NotFound("product")
	} else if err != nil {
		return nil, servicerror.Internal(err)
	}

	model := ToProductModel(product)
	s.cacheSet(ctx, key, model, ProductBySlugCachePolicy.TTL)
	return model, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, limit, offset int32) ([]*ProductModel, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var cached []*ProductModel
	key := ProductListCachePolicy.Key(limit, offset)
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.store.ListProducts(ctx, db.ListProductsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, servicerror.Internal(err)
	}

	models := ToProductModels(products)
	s.cacheSet(ctx, key, models, ProductListCachePolicy.TTL)
	return models, nil
}

// Restock increases stock by quantity; stock decrements happen only
// inside order placement.
func (s *CatalogService) Restock(ctx context.Context, id uuid.UUID, quantity int32) (*ProductModel, error) {
	if quantity <= 0 {
		return nil, servicerror.InvalidArgument("quantity must be positive")
	}

	var updated db.Product
	err := s.store.ExecTx(ctx, func(q *db.Queries) error {
		if _, err := q.GetProductForUpdate(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return servicerror.NotFound("product")
			}
			return err
		}

		var err error
		updated, err = q.IncrementProductStock(ctx, db.IncrementProductStockParams{ID: id, Quantity: quantity})
		return err
	})
	if err != nil {
		if _, ok := servicerror.AsServiceError(err); ok {
			return nil, err
		}
		s.logger.Error(fmt.Sprintf("restock failed: %v", err))
		return nil, servicerror.Internal(err)
	}

	s.sweepProductCaches(ctx, updated)
	return ToProductModel(updated), nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.logger.Error(fmt.Sprintf("failed to read cache key %s: %v", key, err))
		return false
	}
	return found
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, ttl); err != nil {
		// Do not break the caller's flow over a cache write failure
		s.logger.Error(fmt.Sprintf("failed to write cache key %s: %v", key, err))
	}
}

// sweepProductCaches applies every invalidation pattern declared by the
// catalog read policies for the given product.
func (s *CatalogService) sweepProductCaches(ctx context.Context, product db.Product) {
	if s.cache == nil {
		return
	}
	patterns := []string{
		fmt.Sprintf(ProductByIDCachePolicy.InvalidationPatterns[0], product.ID),
		fmt.Sprintf(ProductBySlugCachePolicy.InvalidationPatterns[0], product.Slug),
		ProductListCachePolicy.InvalidationPatterns[0],
	}
	for _, pattern := range patterns {
		if err := s.cache.InvalidatePattern(ctx, pattern); err != nil {
			s.logger.Error(fmt.Sprintf("failed to invalidate cache pattern %s: %v", pattern, err))
		}
	}
}
