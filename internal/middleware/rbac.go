package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-conflict-checker/internal/models"
	appErrors "github.com/noah-isme/course-conflict-checker/pkg/errors"
	"github.com/noah-isme/course-conflict-checker/pkg/response"
)

// RequireRoles lets the request through only when the authenticated role is
// one of roles. SUPERADMIN is always allowed.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles)+1)
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	allowed[models.RoleSuperAdmin] = struct{}{}

	return func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
