package api

import (
	"net/http"

	"github.com/SwiftKart/SwiftKart-Backend/api/apistrings"
	models "github.com/SwiftKart/SwiftKart-Backend/api/models"
	basemodels "github.com/SwiftKart/SwiftKart-Backend/models"
	catalog_service "github.com/SwiftKart/SwiftKart-Backend/services/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Catalog struct {
	server         *Server
	catalogService *catalog_service.CatalogService
}

func (c Catalog) router(server *Server) {
	c.server = server
	c.catalogService = catalog_service.NewCatalogServiceWithCache(server.store, server.logger, server.redis)

	serverGroupV1 := server.router.Group("/api/v1/products")
	serverGroupV1.GET("", c.listProducts)
	serverGroupV1.GET(":productKey", c.getProduct)

	adminGroupV1 := server.router.Group("/api/v1/products",
		server.auth.AuthenticatedMiddleware(),
		server.auth.RequirePermission("catalog:write"))
	adminGroupV1.POST("", c.createProduct)
	adminGroupV1.PUT(":productKey", c.updateProduct)
	adminGroupV1.DELETE(":productKey", c.deleteProduct)
	adminGroupV1.POST(":productKey/restock", c.restockProduct)
}

func (c *Catalog) listProducts(ctx *gin.Context) {
	limit, offset := pagination(ctx)

	products, err := c.catalogService.ListProducts(ctx, limit, offset)
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.ProductsFetched, models.ToProductResponses(products)))
}

// getProduct resolves the path key as a product id when it parses as a
// UUID and as a slug otherwise.
func (c *Catalog) getProduct(ctx *gin.Context) {
	key := ctx.Param("productKey")

	var product *catalog_service.ProductModel
	var err error
	if id, parseErr := uuid.Parse(key); parseErr == nil {
		product, err = c.catalogService.GetProduct(ctx, id)
	} else {
		product, err = c.catalogService.GetProductBySlug(ctx, key)
	}
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.ProductFetched, models.ToProductResponse(product)))
}

func (c *Catalog) createProduct(ctx *gin.Context) {
	request := new(models.CreateProductParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		c.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidProductInput))
		return
	}

	created, err := c.catalogService.CreateProduct(ctx, catalog_service.CreateProductInput{
		Slug:        request.Slug,
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Currency:    request.Currency,
		Stock:       request.Stock,
	})
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess(apistrings.ProductCreated, models.ToProductResponse(created)))
}

func (c *Catalog) updateProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("productKey"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidProductID))
		return
	}

	request := new(models.UpdateProductParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		c.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidProductInput))
		return
	}

	updated, err := c.catalogService.UpdateProduct(ctx, productID, catalog_service.UpdateProductInput{
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Currency:    request.Currency,
	})
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.ProductUpdated, models.ToProductResponse(updated)))
}

func (c *Catalog) deleteProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("productKey"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidProductID))
		return
	}

	if err := c.catalogService.DeleteProduct(ctx, productID); err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.ProductDeleted, struct{}{}))
}

func (c *Catalog) restockProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("productKey"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidProductID))
		return
	}

	request := new(models.RestockParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		c.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidRestockInput))
		return
	}

	updated, err := c.catalogService.Restock(ctx, productID, request.Quantity)
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.ProductRestocked, models.ToProductResponse(updated)))
}
