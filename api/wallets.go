package api

import (
	"database/sql"
	"net/http"

	"github.com/SwiftKart/SwiftKart-Backend/api/apistrings"
	models "github.com/SwiftKart/SwiftKart-Backend/api/models"
	basemodels "github.com/SwiftKart/SwiftKart-Backend/models"
	"github.com/SwiftKart/SwiftKart-Backend/services/currency"
	wallet_service "github.com/SwiftKart/SwiftKart-Backend/services/wallet"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Wallet struct {
	server        *Server
	walletService *wallet_service.WalletService
}

func (w Wallet) router(server *Server) {
	w.server = server
	w.walletService = wallet_service.NewWalletService(server.store, server.logger)

	serverGroupV1 := server.router.Group("/api/v1/wallets", server.auth.AuthenticatedMiddleware())
	serverGroupV1.POST("", w.createWallet)
	serverGroupV1.GET("", w.listWallets)
	serverGroupV1.GET("balance", w.getBalance)
	serverGroupV1.POST("deposit", w.deposit)
	serverGroupV1.POST("withdraw", w.withdraw)
	serverGroupV1.POST("transfer", w.transfer)
	serverGroupV1.GET("transactions", w.listTransactions)
	serverGroupV1.DELETE(":walletID", w.deleteWallet)
}

func (w *Wallet) createWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.CreateWalletParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletInput))
		return
	}

	created, err := w.walletService.CreateWallet(ctx, activeUser.UserID, request.Currency, request.InitialBalance)
	if err != nil {
		w.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess(apistrings.WalletCreated, models.ToWalletResponse(created)))
}

func (w *Wallet) listWallets(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	wallets, err := w.walletService.GetWallets(ctx, activeUser.UserID)
	if err != nil {
		w.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.WalletsFetched, models.ToWalletResponses(wallets)))
}

// getBalance reports 0 for a currency the user holds no wallet in.
func (w *Wallet) getBalance(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	currencyCode := ctx.Query("currency")
	if !currency.IsValidCode(currencyCode) {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidCurrencyInput))
		return
	}

	balance, err := w.walletService.GetBalance(ctx, activeUser.UserID, currencyCode)
	if err != nil {
		w.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.BalanceFetched, models.ToBalanceResponse(currencyCode, balance)))
}

func (w *Wallet) deposit(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.BalanceChangeParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	updated, err := w.walletService.IncreaseBalance(ctx, activeUser.UserID, request.Currency, request.Amount)
	if err != nil {
		w.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.BalanceUpdated, models.ToWalletResponse(updated)))
}

func (w *Wallet) withdraw(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.BalanceChangeParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidAmountInput))
		return
	}

	updated, err := w.walletService.DecreaseBalance(ctx, activeUser.UserID, request.Currency, request.Amount)
	if err != nil {
		w.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.BalanceUpdated, models.ToWalletResponse(updated)))
}

func (w *Wallet) transfer(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	request := new(models.TransferParams)
	if err := ctx.ShouldBindJSON(request); err != nil {
		w.server.logger.Log(logrus.ErrorLevel, err.Error())
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidTransferInput))
		return
	}

	err = w.walletService.Transfer(ctx, activeUser.UserID, request.ToCustomerID, request.Currency, request.Amount)
	if err != nil {
		w.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.TransferCompleted, struct{}{}))
}

func (w *Wallet) listTransactions(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	limit, offset := pagination(ctx)
	transactions, err := w.walletService.ListTransactions(ctx, activeUser.UserID, limit, offset)
	if err != nil {
		w.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.TransactionsFetched, models.ToTransactionResponses(transactions)))
}

func (w *Wallet) deleteWallet(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(apistrings.UserNotFound))
		return
	}

	walletID, err := uuid.Parse(ctx.Param("walletID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError(apistrings.InvalidWalletID))
		return
	}

	// Ownership check lives here; the ledger itself only knows wallet ids.
	found, err := w.server.store.GetWallet(ctx, walletID)
	if err == sql.ErrNoRows {
		ctx.JSON(http.StatusNotFound, basemodels.NewError("wallet does not exist"))
		return
	} else if err != nil {
		w.server.logger.Error(err.Error())
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}
	if found.CustomerID != activeUser.UserID {
		ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.PermissionDenied))
		return
	}

	if err := w.walletService.DeleteWallet(ctx, walletID); err != nil {
		w.server.handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess(apistrings.WalletDeleted, struct{}{}))
}
