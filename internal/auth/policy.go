package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omnistock/stock-ledger-service/internal/model"
)

// Permission names one mutating capability of the API.
type Permission string

const (
	PermRecordUpsert Permission = "inventory.record.upsert"
	PermStockReceive Permission = "inventory.stock.receive"
	PermStockAdjust  Permission = "inventory.stock.adjust"
	PermStockSale    Permission = "inventory.stock.sale"
	PermOrderCreate  Permission = "order.create"
)

// rolePermissions is the whole policy: one static table, consulted once per
// request. Reads carry no permission; store scope governs them instead.
var rolePermissions = map[model.Role]map[Permission]bool{
	model.RoleManager: {
		PermRecordUpsert: true,
		PermStockReceive: true,
		PermStockAdjust:  true,
		PermStockSale:    true,
		PermOrderCreate:  true,
	},
	model.RoleAdmin: {
		PermRecordUpsert: true,
		PermStockReceive: true,
		PermStockAdjust:  true,
		PermStockSale:    true,
		PermOrderCreate:  true,
	},
	model.RoleUser: {
		PermStockReceive: true,
		PermStockSale:    true,
		PermOrderCreate:  true,
	},
	model.RoleGuest: {},
}

func Can(role model.Role, perm Permission) bool {
	return rolePermissions[role][perm]
}

// RequirePermission gates a mutating route on the principal's role. It runs
// after Middleware, so the principal is already present and well-formed.
func RequirePermission(perm Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil || !Can(principal.Role, perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    "PERMISSION_DENIED",
				"message": "role is not permitted to perform this operation",
			})
			return
		}
		c.Next()
	}
}
