package middleware

import (
	"Amoria/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckRoles 要求当前用户命中任意一个指定角色
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	required := make(map[string]struct{}, len(requiredRoles))
	for _, r := range requiredRoles {
		required[r] = struct{}{}
	}

	return func(c *gin.Context) {
		hasPermission := false
		for _, userRole := range c.GetStringSlice("roles") {
			if _, ok := required[userRole]; ok {
				hasPermission = true
				break
			}
		}

		if !hasPermission {
			response.Fail(c, response.Forbidden, "权限不足：无权访问该资源")
			c.Abort()
			return
		}

		c.Next()
	}
}
