package api_router

import (
	"runtime"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	pkgapp "github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionHandler version info API router handler
// VersionHandler 版本信息 API 路由处理器
// Uses App Container to inject dependencies
// 使用 App Container 注入依赖
type VersionHandler struct {
	*Handler
}

// NewVersionHandler creates VersionHandler instance
// NewVersionHandler 创建 VersionHandler 实例
func NewVersionHandler(a *app.App) *VersionHandler {
	return &VersionHandler{
		Handler: NewHandler(a),
	}
}

// ServerVersion retrieves server version information
// @Summary Get server version info
// @Description Get current server software version, Git tag, build time and update hints
// @Tags System
// @Produce json
// @Param params query dto.VersionRequest false "查询参数"
// @Success 200 {object} pkgapp.Res{data=dto.VersionDTO} "Success"
// @Router /api/version [get]
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.VersionRequest{}
	// 参数可选，绑定失败按未携带处理
	_, _ = pkgapp.BindAndValid(c, params)

	versionInfo := h.App.Version()
	checkInfo := h.App.CheckVersion(params.PluginVersion)

	response.ToResponse(code.Success.WithData(dto.VersionDTO{
		Version:              versionInfo.Version,
		GitTag:               versionInfo.GitTag,
		BuildTime:            versionInfo.BuildTime,
		GoVersion:            runtime.Version(),
		VersionIsNew:         checkInfo.VersionIsNew,
		VersionNewName:       checkInfo.VersionNewName,
		VersionNewLink:       checkInfo.VersionNewLink,
		PluginVersionIsNew:   checkInfo.PluginVersionIsNew,
		PluginVersionNewName: checkInfo.PluginVersionNewName,
		PluginVersionNewLink: checkInfo.PluginVersionNewLink,
	}))
}
