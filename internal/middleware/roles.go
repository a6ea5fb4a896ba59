package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eats-api/internal/models"
)

// RoleAny marks an operation as permitted for any authenticated user.
const RoleAny = "Any"

// operationRoles maps each operation to its allowed-role set. An operation
// with no entry is unrestricted. The guard consults this table before
// dispatching to the handler.
var operationRoles = map[string][]string{
	"me":            {RoleAny},
	"userProfile":   {RoleAny},
	"updateAccount": {RoleAny},
	"deleteAccount": {RoleAny},

	"createRestaurant": {string(models.RoleOwner)},
	"updateRestaurant": {string(models.RoleOwner)},
	"deleteRestaurant": {string(models.RoleOwner)},
	"myRestaurants":    {string(models.RoleOwner)},
	"createDish":       {string(models.RoleOwner)},
	"updateDish":       {string(models.RoleOwner)},
	"deleteDish":       {string(models.RoleOwner)},

	"createOrder": {string(models.RoleClient)},
	"order":       {RoleAny},
	"orders":      {RoleAny},
	"updateOrder": {string(models.RoleOwner), string(models.RoleDelivery)},
	"takeOrder":   {string(models.RoleDelivery)},

	"createPayment": {string(models.RoleOwner)},
	"payments":      {string(models.RoleOwner)},

	"pendingOrders": {string(models.RoleOwner)},
	"cookedOrders":  {string(models.RoleDelivery)},
	"orderUpdates":  {RoleAny},
}

// AllowedRoles exposes the table entry for an operation, mainly for tests.
func AllowedRoles(operation string) []string {
	return operationRoles[operation]
}

// Authorize gates an operation against the role table. Unlisted operations
// always pass. Listed operations require an attached user, then either the
// Any marker or membership of the declared set.
func Authorize(operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, declared := operationRoles[operation]
		if !declared {
			c.Next()
			return
		}
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Forbidden resource"})
			return
		}
		for _, role := range roles {
			if role == RoleAny || role == string(user.Role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "Forbidden resource"})
	}
}
