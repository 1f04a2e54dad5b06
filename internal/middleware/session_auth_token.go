package middleware

import (
	"strings"

	"github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"

	"github.com/gin-gonic/gin"
)

// SessionAuthWithConfig 会话认证中间件（使用注入的 Token 管理器）
// 接受两种凭据：/api/auth 签发的会话 JWT，或配置中的静态 Token（插件客户端）。
// enabled 为 false 时（未配置管理口令）直接放行。
// 按优先级尝试获取 Token：Header -> Query
// Try to get the token by priority: Header -> Query
func SessionAuthWithConfig(tokens app.TokenManager, staticToken string, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {

		if !enabled {
			c.Next()
			return
		}

		response := app.NewResponse(c)

		token := extractToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		// 静态 Token 客户端没有会话行，标记为插件接入
		if staticToken != "" && token == staticToken {
			c.Set("session_token", &app.SessionEntity{
				SessionID: "static-token",
				Client:    "plugin",
				IP:        app.GetRequestIP(c),
			})
			c.Next()
			return
		}

		session, err := tokens.Parse(token)
		if err != nil {
			response.ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		c.Set("session_token", session)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	var token string

	if s := c.GetHeader("Authorization"); s != "" {
		token = s
	} else if s := c.GetHeader("authorization"); s != "" {
		token = s
	} else if s := c.GetHeader("Token"); s != "" {
		token = s
	} else if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	}

	// 兼容 "Bearer <token>" 形式
	if after, ok := strings.CutPrefix(token, "Bearer "); ok {
		token = after
	}
	return strings.TrimSpace(token)
}
