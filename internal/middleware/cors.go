package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Cors 创建跨域中间件
// 画布前端与插件客户端从任意本地源访问（Obsidian 的 app:// 源无法枚举），
// 凭据走 Authorization 头而非 Cookie，因此放开来源
func Cors() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{
			"Authorization", "Content-Type", "X-Requested-With",
			"Token", "Lang", DefaultTraceIDHeader,
		},
		ExposeHeaders: []string{DefaultTraceIDHeader},
		MaxAge:        12 * time.Hour,
	})
}
