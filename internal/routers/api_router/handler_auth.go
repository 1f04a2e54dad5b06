package api_router

import (
	"context"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/middleware"
	pkgapp "github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	apperrors "github.com/Nicoding1996/momentum-notes-sub000/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 认证 API 路由处理器
// 单用户口令登录，签发会话 Token
type AuthHandler struct {
	*Handler
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(a *app.App) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(a),
	}
}

// Login 口令登录
// @Summary 口令登录
// @Description 校验管理口令并签发会话 Token，之后的请求将 Token 放在 token 请求头
// @Tags 认证
// @Accept json
// @Produce json
// @Param params body dto.AuthRequest true "登录参数"
// @Success 200 {object} pkgapp.Res{data=dto.AuthTokenDTO} "成功"
// @Router /api/auth [post]
func (h *AuthHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AuthRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AuthHandler.Login.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	token, err := h.App.AuthService.Login(ctx, params, global.WebClientName, pkgapp.GetRequestIP(c))
	if err != nil {
		h.logError(ctx, "AuthHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(token))
}

// logError 记录错误日志（包含 TraceID）
func (h *AuthHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
