package api_router

import (
	"context"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/middleware"
	pkgapp "github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	apperrors "github.com/Nicoding1996/momentum-notes-sub000/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteLinkHandler 笔记链接 API 路由处理器
// 提供反向链接、正向链接与未链接提及三类按笔记的图谱读取
type NoteLinkHandler struct {
	*Handler
}

// NewNoteLinkHandler 创建 NoteLinkHandler 实例
func NewNoteLinkHandler(a *app.App) *NoteLinkHandler {
	return &NoteLinkHandler{
		Handler: NewHandler(a),
	}
}

// Backlinks 获取反向链接
// @Summary 获取反向链接
// @Description 返回链接到指定笔记的所有来源，上下文片段按来源当前内容实时计算
// @Tags 图谱
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteGraphRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.BacklinkItem} "成功"
// @Router /api/note/backlinks [get]
func (h *NoteLinkHandler) Backlinks(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGraphRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteLinkHandler.Backlinks.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	items, err := h.App.NoteLinkService.GetBacklinks(ctx, params.NoteID)
	if err != nil {
		h.logError(ctx, "NoteLinkHandler.Backlinks", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(items))
}

// Outlinks 获取正向链接
// @Summary 获取正向链接
// @Description 返回指定笔记发出的全部已解析链接及上下文片段
// @Tags 图谱
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteGraphRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.OutlinkItem} "成功"
// @Router /api/note/outlinks [get]
func (h *NoteLinkHandler) Outlinks(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGraphRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteLinkHandler.Outlinks.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	items, err := h.App.NoteLinkService.GetOutlinks(ctx, params.NoteID)
	if err != nil {
		h.logError(ctx, "NoteLinkHandler.Outlinks", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(items))
}

// UnlinkedMentions 获取未链接提及
// @Summary 获取未链接提及
// @Description 扫描其他在用笔记的纯文本，返回目标标题未被 [[链接]] 的字面出现；
// @Description 已链接到目标的来源笔记整体排除
// @Tags 图谱
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteGraphRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.MentionItem} "成功"
// @Router /api/note/mentions [get]
func (h *NoteLinkHandler) UnlinkedMentions(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGraphRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteLinkHandler.UnlinkedMentions.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	items, err := h.App.NoteLinkService.FindUnlinkedMentions(ctx, params.NoteID)
	if err != nil {
		h.logError(ctx, "NoteLinkHandler.UnlinkedMentions", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(items))
}

// logError 记录错误日志（包含 TraceID）
func (h *NoteLinkHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
