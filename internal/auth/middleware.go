package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnistock/stock-ledger-service/internal/model"
)

const principalKey = "principal"

// Middleware materializes the principal contract supplied by the upstream
// auth layer. This service trusts the headers; it authorizes store scope,
// it never authenticates.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := &model.Principal{
			ID:      c.GetHeader("X-User-Id"),
			Role:    model.Role(c.GetHeader("X-User-Role")),
			StoreID: c.GetHeader("X-Store-Id"),
		}

		if principal.ID == "" || principal.StoreID == "" || !principal.Role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHENTICATED",
				"message": "missing or malformed principal headers",
			})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) *model.Principal {
	if val, ok := c.Get(principalKey); ok {
		if p, ok := val.(*model.Principal); ok {
			return p
		}
	}
	return nil
}
