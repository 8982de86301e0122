package api

import (
	"net/http"

	"github.com/SwiftKart/SwiftKart-Backend/api/apistrings"
	basemodels "github.com/SwiftKart/SwiftKart-Backend/models"
	"github.com/SwiftKart/SwiftKart-Backend/services/servicerror"
	"github.com/gin-gonic/gin"
)

var kindStatus = map[servicerror.Kind]int{
	servicerror.KindNotFound:            http.StatusNotFound,
	servicerror.KindInvalidArgument:     http.StatusBadRequest,
	servicerror.KindInvalidState:        http.StatusUnprocessableEntity,
	servicerror.KindInsufficientStock:   http.StatusConflict,
	servicerror.KindInsufficientBalance: http.StatusPaymentRequired,
	servicerror.KindForbidden:           http.StatusForbidden,
	servicerror.KindDuplicate:           http.StatusConflict,
	servicerror.KindConflict:            http.StatusConflict,
	servicerror.KindInternal:            http.StatusInternalServerError,
}

// handleServiceError translates a typed service error into a transport
// response. Internal errors never expose their cause.
func (s *Server) handleServiceError(ctx *gin.Context, err error) {
	se, ok := servicerror.AsServiceError(err)
	if !ok || se.Kind == servicerror.KindInternal {
		s.logger.Error("unhandled service error", err)
		ctx.JSON(http.StatusInternalServerError, basemodels.NewError(apistrings.ServerError))
		return
	}

	status, ok := kindStatus[se.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, basemodels.NewError(se.Message))
}
