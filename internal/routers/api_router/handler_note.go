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

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// Get 获取单条笔记详情
// @Summary 获取笔记详情
// @Description 根据 ID 获取单条笔记的内容、标签与画布位置
// @Tags 笔记
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteGetRequest true "获取参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/note [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGetRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Get.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// List 获取笔记列表
// @Summary 获取笔记列表
// @Description 分页获取笔记列表，keyword 匹配标题或内容
// @Tags 笔记
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteListItemDTO} "成功"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteListRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	params.Page = pkgapp.GetPage(c)
	params.PageSize = pkgapp.GetPageSize(c)

	notes, count, err := h.App.NoteService.List(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, notes, int(count))
}

// Create 创建笔记
// @Summary 创建笔记
// @Description 创建笔记并立即同步其内容中的 [[链接]]，指向新标题的待解析链接同时被解析
// @Tags 笔记
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "创建参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteWithSyncDTO} "成功"
// @Router /api/note [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	note, syncResult, err := h.App.NoteService.Create(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.NoteWithSyncDTO{
		NoteDTO: note,
		Sync:    dto.SyncResultFromDomain(syncResult),
	}))
}

// Update 更新笔记
// @Summary 更新笔记
// @Description 更新笔记；内容变更触发链接同步，改名触发待解析链接重解析，仅位置变更走快速路径
// @Tags 笔记
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.NoteUpdateRequest true "更新参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteWithSyncDTO} "成功"
// @Router /api/note [put]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	note, syncResult, err := h.App.NoteService.Update(ctx, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.NoteWithSyncDTO{
		NoteDTO: note,
		Sync:    dto.SyncResultFromDomain(syncResult),
	}))
}

// Delete 删除笔记
// @Summary 删除笔记
// @Description 软删除笔记并清理其发出的链接，指向它的连接保留
// @Tags 笔记
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.NoteDeleteRequest true "删除参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/note [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteDeleteRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.NoteService.Delete(ctx, params); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// logError 记录错误日志（包含 TraceID）
func (h *NoteHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
