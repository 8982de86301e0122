package api

import (
	"net/http"

	"github.com/SwiftKart/SwiftKart-Backend/api/apistrings"
	models "github.com/SwiftKart/SwiftKart-Backend/api/models"
	basemodels "github.com/SwiftKart/SwiftKart-Backend/models"
	cart_service "github.com/SwiftKart/SwiftKart-Backend/services/cart"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Cart struct {
	server      *Server
	cartService *cart_service.CartService
}

func (c Cart) router(server *Server) {
	c.server = server
	c.cartService = cart_service.NewCartService(server.store, server.logger)

	serverGroupV1 := server.router.Group("/api/v1/cart", server.auth.AuthenticatedMiddleware())
	serverGroupV1.GET("", c.getCart)
	serverGroupV1.DELETE("", c.clearCart)
	serverGroupV1.POST("items", c.addItem)
	serverGroupV1.PUT("items/:productID", c.updateItem)
	serverGroupV1.DELETE("items/:productID", c.removeItem)
}

func (c *Cart) getCart(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	userCart, err := c.cartService.GetCart(ctx, activeUser.UserID)
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.CartFetched, models.ToCartResponse(userCart)))
}

func (c *Cart) addItem(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.AddCartItemParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		c.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidCartInput))
		return
	}

	userCart, err := c.cartService.AddItem(ctx, activeUser.UserID, request.ProductID, request.Quantity)
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.CartUpdated, models.ToCartResponse(userCart)))
}

func (c *Cart) updateItem(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	productID, err := uuid.Parse(ctx.Param("productID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidProductID))
		return
	}

	request := new(models.UpdateCartItemParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		c.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidCartInput))
		return
	}

	userCart, err := c.cartService.UpdateItemQuantity(ctx, activeUser.UserID, productID, request.Quantity)
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.CartUpdated, models.ToCartResponse(userCart)))
}

func (c *Cart) removeItem(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	productID, err := uuid.Parse(ctx.Param("productID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidProductID))
		return
	}

	userCart, err := c.cartService.RemoveItem(ctx, activeUser.UserID, productID)
	if err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.CartUpdated, models.ToCartResponse(userCart)))
}

func (c *Cart) clearCart(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	if err := c.cartService.ClearCart(ctx, activeUser.UserID); err != nil {
		c.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.CartCleared, struct{}{}))
}
