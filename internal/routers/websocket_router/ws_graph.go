package websocket_router

import (
	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	pkgapp "github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"

	"go.uber.org/zap"
)

// GraphWSHandler 图谱 WebSocket 处理器
// 客户端订阅后收到全量快照，后续图谱变更事件由服务层经事件中继广播
type GraphWSHandler struct {
	*WSHandler
}

// NewGraphWSHandler 创建 GraphWSHandler 实例
func NewGraphWSHandler(a *app.App) *GraphWSHandler {
	return &GraphWSHandler{
		WSHandler: NewWSHandler(a),
	}
}

// SessionAuth WebSocket 鉴权
// 与 HTTP 侧一致：接受 /api/auth 签发的会话 JWT 或配置的静态 Token，
// 认证整体关闭时任意 Token 都放行
func (h *GraphWSHandler) SessionAuth(c *pkgapp.WebsocketClient, token string) (*pkgapp.SessionEntity, error) {
	cfg := h.App.Config()

	if !cfg.Security.Enabled() {
		return &pkgapp.SessionEntity{
			SessionID: "open-access",
			Client:    "plugin",
			IP:        pkgapp.GetRequestIP(c.Ctx),
		}, nil
	}

	if staticToken := cfg.Security.AuthToken; staticToken != "" && token == staticToken {
		return &pkgapp.SessionEntity{
			SessionID: "static-token",
			Client:    "plugin",
			IP:        pkgapp.GetRequestIP(c.Ctx),
		}, nil
	}

	return h.App.TokenManager.Parse(token)
}

// GraphSubscribe 订阅图谱
// 应答一份全量快照，之后的变更事件经 BroadcastAll 推送；
// 同一连接的并发订阅用 singleflight 合并为一次快照计算
func (h *GraphWSHandler) GraphSubscribe(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	ctx := c.Context()

	v, err, _ := c.SF.Do(dto.WSActionGraphSubscribe, func() (interface{}, error) {
		return h.App.GraphService.Snapshot(ctx)
	})
	if err != nil {
		h.respondError(c, code.ErrorDBQuery, err, "GraphWSHandler.GraphSubscribe")
		return
	}

	c.ToResponse(code.Success.WithData(v), dto.WSActionGraphSubscribe)
}

// NoteAnalyze 单笔记 AI 建议
// 同一连接上同一笔记只允许一个在途请求，重复请求直接拒绝
func (h *GraphWSHandler) NoteAnalyze(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.SuggestRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		h.App.Logger().Error("GraphWSHandler.NoteAnalyze.BindAndValid errs", zap.Error(errs))
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()), dto.WSActionNoteAnalyze)
		return
	}

	if !c.TryAcquireSuggest(params.NoteID) {
		c.ToResponse(code.ErrorSuggestionInFlight, dto.WSActionNoteAnalyze)
		return
	}
	defer c.ReleaseSuggest(params.NoteID)

	suggestions, err := h.App.SuggestService.Suggest(c.Context(), params.NoteID, params.Trigger)
	if err != nil {
		h.logError(c, "GraphWSHandler.NoteAnalyze", err)
		c.ToResponse(code.ErrorAIService.WithDetails(err.Error()), dto.WSActionNoteAnalyze)
		return
	}

	c.ToResponse(code.Success.WithData(dto.SuggestionsFromDomain(suggestions)), dto.WSActionNoteAnalyze)
}

// NoteAutoLink 单笔记自动连接
// 生成建议并提交为连线，新连线事件由服务层广播
func (h *GraphWSHandler) NoteAutoLink(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	params := &dto.NoteGraphRequest{}

	valid, errs := c.BindAndValid(msg.Data, params)
	if !valid {
		h.App.Logger().Error("GraphWSHandler.NoteAutoLink.BindAndValid errs", zap.Error(errs))
		c.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()), dto.WSActionNoteAutoLink)
		return
	}

	if !c.TryAcquireSuggest(params.NoteID) {
		c.ToResponse(code.ErrorSuggestionInFlight, dto.WSActionNoteAutoLink)
		return
	}
	defer c.ReleaseSuggest(params.NoteID)

	result, suggestions, err := h.App.AutoLinkService.AutoLink(c.Context(), params.NoteID)
	if err != nil {
		h.logError(c, "GraphWSHandler.NoteAutoLink", err)
		c.ToResponse(code.ErrorAutoLinkFailed.WithDetails(err.Error()), dto.WSActionNoteAutoLink)
		return
	}

	c.ToResponse(code.Success.WithData(dto.AutoLinkResultFromDomain(result, suggestions)), dto.WSActionNoteAutoLink)
}

// Ping 心跳，应答 pong
func (h *GraphWSHandler) Ping(c *pkgapp.WebsocketClient, msg *pkgapp.WebSocketMessage) {
	c.ToResponse(code.Success, dto.WSActionPong)
}
