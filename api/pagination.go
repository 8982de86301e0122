package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pagination reads limit/offset query parameters, falling back to a
// sane page size. Services clamp the limit again on their side.
func pagination(ctx *gin.Context) (limit int32, offset int32) {
	limit = 20
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed > 0 {
			limit = int32(parsed)
		}
	}
	if raw := ctx.Query("offset"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 32); err == nil && parsed >= 0 {
			offset = int32(parsed)
		}
	}
	return limit, offset
}
