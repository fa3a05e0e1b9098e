package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
)

// Role names used across the back office
const (
	RoleAdmin             = "admin"
	RoleManager           = "manager"
	RoleProductionManager = "production_manager"
	RoleProductionStaff   = "production_staff"
	RoleSales             = "sales"
)

// HTTP headers set by the authenticating gateway. Token verification happens
// upstream; this service trusts the forwarded identity.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Identity extracts the authenticated user from headers and stores it in the
// gin context. Requests without a bearer token are rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			AbortWithAppError(c, errors.ErrUnauthorized(""))
			return
		}

		userID := c.GetHeader(HeaderUserID)
		role := c.GetHeader(HeaderUserRole)
		if userID == "" || role == "" {
			AbortWithAppError(c, errors.ErrUnauthorized("missing identity headers"))
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyUserRole, role)

		c.Next()
	}
}

// RequireRoles rejects requests whose role is not in the allowed set.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextKeyUserRole)
		if role == "" || (!allowed[role] && role != RoleAdmin) {
			AbortWithAppError(c, errors.ErrForbidden(""))
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user id from the gin context.
func UserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}
