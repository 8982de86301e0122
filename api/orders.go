package api

import (
	"net/http"

	"github.com/SwiftKart/SwiftKart-Backend/api/apistrings"
	models "github.com/SwiftKart/SwiftKart-Backend/api/models"
	basemodels "github.com/SwiftKart/SwiftKart-Backend/models"
	order_service "github.com/SwiftKart/SwiftKart-Backend/services/order"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Order struct {
	server       *Server
	orderService *order_service.OrderService
}

func (o Order) router(server *Server) {
	o.server = server
	o.orderService = order_service.NewOrderService(server.store, server.logger, server.refs)

	serverGroupV1 := server.router.Group("/api/v1/orders", server.auth.AuthenticatedMiddleware())
	serverGroupV1.POST("", o.placeOrder)
	serverGroupV1.GET("", o.listOrders)
	serverGroupV1.GET(":orderID", o.getOrder)
	serverGroupV1.PATCH(":orderID/status", server.auth.RequirePermission("orders:manage"), o.updateStatus)
}

// placeOrder converts the caller's cart into an order paid from the
// named wallet. Everything happens in one transaction; a failed
// placement leaves cart, stock and wallet untouched.
func (o *Order) placeOrder(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.PlaceOrderParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		o.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidOrderInput))
		return
	}

	placed, err := o.orderService.CreateOrderFromCart(ctx, activeUser.UserID, request.WalletID)
	if err != nil {
		o.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess(apistrings.OrderPlaced, models.ToOrderResponse(placed)))
}

func (o *Order) listOrders(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	limit, offset := pagination(ctx)
	orders, err := o.orderService.ListOrders(ctx, activeUser.UserID, limit, offset)
	if err != nil {
		o.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.OrdersFetched, models.ToOrderResponses(orders)))
}

func (o *Order) getOrder(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	orderID, err := uuid.Parse(ctx.Param("orderID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidOrderID))
		return
	}

	found, err := o.orderService.GetOrder(ctx, activeUser.UserID, orderID)
	if err != nil {
		o.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.OrderFetched, models.ToOrderResponse(found)))
}

func (o *Order) updateStatus(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("orderID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidOrderID))
		return
	}

	request := new(models.UpdateOrderStatusParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		o.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidStatusInput))
		return
	}

	updated, err := o.orderService.UpdateOrderStatus(ctx, orderID, order_service.Status(request.Status))
	if err != nil {
		o.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.OrderStatusUpdated, models.ToOrderResponse(updated)))
}
