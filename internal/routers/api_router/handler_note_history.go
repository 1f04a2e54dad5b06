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

// NoteHistoryHandler 笔记历史版本 API 路由处理器
type NoteHistoryHandler struct {
	*Handler
}

// NewNoteHistoryHandler 创建 NoteHistoryHandler 实例
func NewNoteHistoryHandler(a *app.App) *NoteHistoryHandler {
	return &NoteHistoryHandler{
		Handler: NewHandler(a),
	}
}

// List 获取历史版本列表
// @Summary 获取笔记历史版本列表
// @Description 分页返回笔记的历史版本（不含内容），版本号倒序
// @Tags 历史
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteHistoryListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteHistoryDTO} "成功"
// @Router /api/note/histories [get]
func (h *NoteHistoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteHistoryListRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHistoryHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	params.Page = pkgapp.GetPage(c)
	params.PageSize = pkgapp.GetPageSize(c)

	histories, count, err := h.App.NoteHistoryService.List(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHistoryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, histories, int(count))
}

// Get 获取单个历史版本
// @Summary 获取单个历史版本
// @Description 返回一个历史版本的完整内容
// @Tags 历史
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteHistoryGetRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteHistoryDTO} "成功"
// @Router /api/note/history [get]
func (h *NoteHistoryHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteHistoryGetRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHistoryHandler.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	history, err := h.App.NoteHistoryService.Get(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHistoryHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(history))
}

// Diff 对比历史版本
// @Summary 对比历史版本
// @Description 生成两个历史版本间的差异；toId 为 0 时与当前内容比较
// @Tags 历史
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.HistoryDiffRequest true "对比参数"
// @Success 200 {object} pkgapp.Res{data=dto.HistoryDiffDTO} "成功"
// @Router /api/note/history/diff [get]
func (h *NoteHistoryHandler) Diff(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.HistoryDiffRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHistoryHandler.Diff.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	diff, err := h.App.NoteHistoryService.Diff(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHistoryHandler.Diff", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(diff))
}

// logError 记录错误日志（包含 TraceID）
func (h *NoteHistoryHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
