package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequirePasswordChangeCompletedMiddleware 阻止初始密码未改的账号
// 访问业务接口（简历、草稿、导入）。
// 只看 access token 里的 must_change_password 声明，不查库。
func RequirePasswordChangeCompletedMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if value, ok := c.Get("mustChangePassword"); ok {
			if mustChange, ok := value.(bool); ok && mustChange {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "password change required"})
				return
			}
		}
		c.Next()
	}
}
