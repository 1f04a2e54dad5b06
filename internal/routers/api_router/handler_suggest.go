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

// SuggestHandler AI 连接建议 API 路由处理器
// 建议只读不落库，自动连接把建议提交为真实连线
type SuggestHandler struct {
	*Handler
}

// NewSuggestHandler 创建 SuggestHandler 实例
func NewSuggestHandler(a *app.App) *SuggestHandler {
	return &SuggestHandler{
		Handler: NewHandler(a),
	}
}

// Suggest 单笔记建议
// @Summary 获取单笔记 AI 建议
// @Description 为指定笔记生成连接建议；trigger=auto 受同笔记最小间隔限制，
// @Description 同一笔记同时只允许一个在途请求
// @Tags AI
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.SuggestRequest true "建议参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.SuggestionDTO} "成功"
// @Router /api/note/suggest [post]
func (h *SuggestHandler) Suggest(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SuggestRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SuggestHandler.Suggest.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	suggestions, err := h.App.SuggestService.Suggest(ctx, params.NoteID, params.Trigger)
	if err != nil {
		h.logError(ctx, "SuggestHandler.Suggest", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.SuggestionsFromDomain(suggestions)))
}

// AutoLink 单笔记自动连接
// @Summary 单笔记自动连接
// @Description 为指定笔记生成建议并直接提交为连线，返回 {created, skipped} 聚合与采纳的建议
// @Tags AI
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.NoteGraphRequest true "自动连接参数"
// @Success 200 {object} pkgapp.Res{data=dto.AutoLinkResultDTO} "成功"
// @Router /api/note/autolink [post]
func (h *SuggestHandler) AutoLink(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGraphRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SuggestHandler.AutoLink.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	result, suggestions, err := h.App.AutoLinkService.AutoLink(ctx, params.NoteID)
	if err != nil {
		h.logError(ctx, "SuggestHandler.AutoLink", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.AutoLinkResultFromDomain(result, suggestions)))
}

// SuggestCanvas 整板建议
// @Summary 整板 AI 建议
// @Description 对整个画布做两两关系建议；commit=true 时把通过校验的建议直接提交为连线
// @Tags AI
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.CanvasSuggestRequest true "建议参数"
// @Success 200 {object} pkgapp.Res{data=dto.AutoLinkResultDTO} "成功"
// @Router /api/canvas/suggest [post]
func (h *SuggestHandler) SuggestCanvas(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.CanvasSuggestRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SuggestHandler.SuggestCanvas.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	result, suggestions, err := h.App.AutoLinkService.AutoLinkCanvas(ctx, params.Commit)
	if err != nil {
		h.logError(ctx, "SuggestHandler.SuggestCanvas", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.AutoLinkResultFromDomain(result, suggestions)))
}

// logError 记录错误日志（包含 TraceID）
func (h *SuggestHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, traceID),
	)
}
