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

// GraphHandler 图谱快照 API 路由处理器
type GraphHandler struct {
	*Handler
}

// NewGraphHandler 创建 GraphHandler 实例
func NewGraphHandler(a *app.App) *GraphHandler {
	return &GraphHandler{
		Handler: NewHandler(a),
	}
}

// Snapshot 获取全量图谱
// @Summary 获取全量图谱
// @Description 返回全部存活笔记节点与连线，供画布一次性渲染
// @Tags 图谱
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.GraphDTO} "成功"
// @Router /api/graph [get]
func (h *GraphHandler) Snapshot(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	graph, err := h.App.GraphService.Snapshot(ctx)
	if err != nil {
		h.logError(ctx, "GraphHandler.Snapshot", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(graph))
}

// logError 记录错误日志（包含 TraceID）
func (h *GraphHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
