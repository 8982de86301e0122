package api

import (
	"database/sql"
	"net/http"

	"github.com/SwiftKart/SwiftKart-Backend/api/apistrings"
	models "github.com/SwiftKart/SwiftKart-Backend/api/models"
	db "github.com/SwiftKart/SwiftKart-Backend/db/sqlc"
	basemodels "github.com/SwiftKart/SwiftKart-Backend/models"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Customer covers the thin owner-record surface. Identity and
// credentials live elsewhere; this service only needs a row to hang
// wallets, carts and orders off.
type Customer struct {
	server *Server
}

func (c Customer) router(server *Server) {
	c.server = server

	serverGroupV1 := server.router.Group("/api/v1", server.auth.AuthenticatedMiddleware())
	serverGroupV1.GET("profile", c.profile)
	serverGroupV1.POST("customers", server.auth.RequirePermission("users:write"), c.createCustomer)
}

func (c *Customer) profile(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	dbUser, err := c.server.store.GetUser(ctx, activeUser.UserID)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.UserNotFound))
		return
	} else if err != nil {
		c.server.logger.Error(err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.ProfileFetched, models.ToCustomerResponse(dbUser)))
}

func (c *Customer) createCustomer(ctx *gin.Context) {
	request := new(models.CreateCustomerParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		c.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidCustomerInput))
		return
	}

	created, err := c.server.store.CreateUser(ctx, db.CreateUserParams{
		Email: request.Email,
		Tag:   sql.NullString{String: request.Tag, Valid: request.Tag != ""},
	})
	if db.IsDuplicate(err) {
		ctx.JSON(http.StatusConflict, basemodels.NewError("customer with this email already exists"))
		return
	} else if err != nil {
		c.server.logger.Error(err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess(apistrings.CustomerCreated, models.ToCustomerResponse(created)))
}
