package api

import (
	"net/http"
	"strings"

	"github.com/SwiftKart/SwiftKart-Backend/api/apistrings"
	basemodels "github.com/SwiftKart/SwiftKart-Backend/models"
	"github.com/SwiftKart/SwiftKart-Backend/services/security"
	"github.com/SwiftKart/SwiftKart-Backend/utils"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens *utils.JWTToken
	cache  *security.Cache
}

func NewAuthMiddleware(tokens *utils.JWTToken, cache *security.Cache) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		cache:  cache,
	}
}

// AuthenticatedMiddleware verifies the bearer token and stashes the
// decoded user on the context. Verified tokens are cached so repeat
// requests skip the signature check.
func (m *AuthMiddleware) AuthenticatedMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Request"})
			ctx.Abort()
			return
		}

		tokenSplit := strings.Split(token, " ")
		if len(tokenSplit) != 2 || strings.ToLower(tokenSplit[0]) != "bearer" {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token, expects bearer token"})
			ctx.Abort()
			return
		}

		var user utils.TokenObject
		if cached, err := m.cache.Get(tokenSplit[1]); err == nil {
			user = cached.(utils.TokenObject)
		} else {
			user, err = m.tokens.VerifyToken(tokenSplit[1])
			if err != nil {
				ctx.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
				ctx.Abort()
				return
			}
			m.cache.Insert(tokenSplit[1], user)
		}

		ctx.Set("user_id", user.UserID)
		ctx.Set("user_role", user.Role)
		/// Accessible User Across the App
		ctx.Set("user", user)
		ctx.Next()
	}
}

// RequirePermission gates a route on a capability in the token's
// permission set. Must run after AuthenticatedMiddleware.
func (m *AuthMiddleware) RequirePermission(permission string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utils.GetActiveUser(ctx)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized Request"})
			ctx.Abort()
			return
		}

		if !user.HasPermission(permission) {
			ctx.JSON(http.StatusForbidden, basemodels.NewError(apistrings.PermissionDenied))
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST,HEAD,PATCH,OPTIONS,GET,PUT,DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
