package middleware

import (
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfoWithConfig 向请求上下文注入应用标识（使用注入的配置）
func AppInfoWithConfig(name string, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
