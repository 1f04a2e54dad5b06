package api_router

import (
	"context"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/middleware"
	pkgapp "github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	apperrors "github.com/Nicoding1996/momentum-notes-sub000/pkg/errors"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BackupHandler 图谱备份 API 路由处理器
type BackupHandler struct {
	*Handler
}

// NewBackupHandler 创建 BackupHandler 实例
func NewBackupHandler(a *app.App) *BackupHandler {
	return &BackupHandler{
		Handler: NewHandler(a),
	}
}

// ListConfigs 获取备份配置列表
// @Summary 获取备份配置列表
// @Tags 备份
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.BackupConfigDTO} "成功"
// @Router /api/backup/configs [get]
func (h *BackupHandler) ListConfigs(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	configs, err := h.App.BackupService.ListConfigs(ctx)
	if err != nil {
		h.logError(ctx, "BackupHandler.ListConfigs", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(configs))
}

// SaveConfig 保存备份配置
// @Summary 创建或更新备份配置
// @Description 校验 cron 表达式与存储类型后保存配置，id 为 0 时新建
// @Tags 备份
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.BackupConfigRequest true "配置参数"
// @Success 200 {object} pkgapp.Res{data=dto.BackupConfigDTO} "成功"
// @Router /api/backup/config [post]
func (h *BackupHandler) SaveConfig(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BackupConfigRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BackupHandler.SaveConfig.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	config, err := h.App.BackupService.SaveConfig(ctx, params)
	if err != nil {
		h.logError(ctx, "BackupHandler.SaveConfig", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(config))
}

// DeleteConfig 删除备份配置
// @Summary 删除备份配置及其历史
// @Tags 备份
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.BackupDeleteRequest true "删除参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/backup/config [delete]
func (h *BackupHandler) DeleteConfig(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BackupDeleteRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BackupHandler.DeleteConfig.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.BackupService.DeleteConfig(ctx, params.ID); err != nil {
		h.logError(ctx, "BackupHandler.DeleteConfig", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Execute 立即执行备份
// @Summary 立即执行一次备份
// @Description 导出全部笔记、链接与连线为归档并上传到配置的存储
// @Tags 备份
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.BackupExecuteRequest true "执行参数"
// @Success 200 {object} pkgapp.Res{data=dto.BackupHistoryDTO} "成功"
// @Router /api/backup/execute [post]
func (h *BackupHandler) Execute(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BackupExecuteRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BackupHandler.Execute.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	history, err := h.App.BackupService.Execute(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "BackupHandler.Execute", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(history))
}

// ListHistories 获取备份历史
// @Summary 分页获取备份历史
// @Tags 备份
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.BackupHistoryListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.BackupHistoryDTO} "成功"
// @Router /api/backup/histories [get]
func (h *BackupHandler) ListHistories(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BackupHistoryListRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("BackupHandler.ListHistories.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	params.Page = pkgapp.GetPage(c)
	params.PageSize = pkgapp.GetPageSize(c)

	histories, count, err := h.App.BackupService.ListHistories(ctx, params)
	if err != nil {
		h.logError(ctx, "BackupHandler.ListHistories", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, histories, int(count))
}

// logError 记录错误日志（包含 TraceID）
func (h *BackupHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, traceID),
	)
}
