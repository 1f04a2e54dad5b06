package api_router

import (
	"context"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/middleware"
	pkgapp "github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	apperrors "github.com/Nicoding1996/momentum-notes-sub000/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusHandler 运行状态 API 路由处理器
type StatusHandler struct {
	*Handler
}

// NewStatusHandler 创建 StatusHandler 实例，注入 WebSocket 服务以上报连接数
func NewStatusHandler(a *app.App, wss *pkgapp.WebsocketServer) *StatusHandler {
	return &StatusHandler{
		Handler: NewHandlerWithWSS(a, wss),
	}
}

// Status 获取运行状态
// @Summary 获取运行状态
// @Description 返回图谱规模、进程资源占用与数据目录磁盘占用
// @Tags 系统
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.StatusDTO} "成功"
// @Router /api/status [get]
func (h *StatusHandler) Status(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	status, err := h.App.StatusService.Status(ctx)
	if err != nil {
		h.logError(ctx, "StatusHandler.Status", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if h.WSS != nil {
		status.Clients = h.WSS.ClientCount()
	}

	response.ToResponse(code.Success.WithData(status))
}

// logError 记录错误日志（包含 TraceID）
func (h *StatusHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
