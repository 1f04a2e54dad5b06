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

// EdgeHandler 画布连线 API 路由处理器
type EdgeHandler struct {
	*Handler
}

// NewEdgeHandler 创建 EdgeHandler 实例
func NewEdgeHandler(a *app.App) *EdgeHandler {
	return &EdgeHandler{
		Handler: NewHandler(a),
	}
}

// Create 创建连线
// @Summary 创建连线
// @Description 手动拖拽创建两个笔记间的连线，关系类型缺省为 related-to
// @Tags 连线
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.EdgeCreateRequest true "创建参数"
// @Success 200 {object} pkgapp.Res{data=dto.EdgeDTO} "成功"
// @Router /api/edge [post]
func (h *EdgeHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EdgeCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EdgeHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	edge, err := h.App.EdgeService.Create(ctx, params)
	if err != nil {
		h.logError(ctx, "EdgeHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(edge))
}

// Update 修改连线
// @Summary 修改连线
// @Description 修改连线的关系类型或标签
// @Tags 连线
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Accept json
// @Produce json
// @Param params body dto.EdgeUpdateRequest true "更新参数"
// @Success 200 {object} pkgapp.Res{data=dto.EdgeDTO} "成功"
// @Router /api/edge [put]
func (h *EdgeHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EdgeUpdateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EdgeHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	edge, err := h.App.EdgeService.Update(ctx, params)
	if err != nil {
		h.logError(ctx, "EdgeHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(edge))
}

// Delete 删除连线
// @Summary 删除连线
// @Description 删除一条连线
// @Tags 连线
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Param params query dto.EdgeDeleteRequest true "删除参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/edge [delete]
func (h *EdgeHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EdgeDeleteRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EdgeHandler.Delete.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.EdgeService.Delete(ctx, params); err != nil {
		h.logError(ctx, "EdgeHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// RelationshipTypes 获取关系类型
// @Summary 获取关系类型
// @Description 返回全部关系类型及其展示元数据，供画布图例使用
// @Tags 连线
// @Security SessionAuthToken
// @Param token header string true "认证 Token"
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.RelationshipTypeDTO} "成功"
// @Router /api/edge/types [get]
func (h *EdgeHandler) RelationshipTypes(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.WithData(h.App.EdgeService.ListRelationshipTypes()))
}

// logError 记录错误日志（包含 TraceID）
func (h *EdgeHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
