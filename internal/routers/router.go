package routers

import (
	"time"

	_ "github.com/Nicoding1996/momentum-notes-sub000/docs"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/middleware"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/routers/api_router"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/routers/websocket_router"
	pkgapp "github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/lxzan/gws"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/auth",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	// AI 建议接口额度更紧，避免上游模型被打爆
	limiter.BucketRule{
		Key:          "/api/note/suggest",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
	limiter.BucketRule{
		Key:          "/api/canvas/suggest",
		FillInterval: time.Second,
		Capacity:     2,
		Quantum:      2,
	},
)

// wsEventPublisher 把服务层图谱事件广播给全部已鉴权的 WebSocket 客户端
type wsEventPublisher struct {
	wss *pkgapp.WebsocketServer
}

func (p *wsEventPublisher) Publish(action string, data interface{}) {
	p.wss.BroadcastAll(action, data)
}

// NewRouter 构建 HTTP 路由与 WebSocket 中心
// 服务层事件经 App 的事件中继接入这里建立的 WebSocket 广播
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	var wss = pkgapp.NewWebsocketServer(pkgapp.WebsocketServerConfig{
		GWSOption: gws.ServerOption{
			CheckUtf8Enabled:    true,
			ParallelEnabled:     true,                                 // 开启并行消息处理
			Recovery:            gws.Recovery,                         // 开启异常恢复
			PermessageDeflate:   gws.PermessageDeflate{Enabled: true}, // 开启压缩
			ParallelGolimit:     8,
			ReadMaxPayloadSize:  1024 * 1024 * 16, // 设置最大读取缓冲区大小 16MB
			WriteMaxPayloadSize: 1024 * 1024 * 16, // 设置最大写入缓冲区大小 16MB
		},
		IsReturnSuccess: appContainer.IsReturnSuccess(),
	})

	// 创建 WebSocket Handler（注入 App Container）
	graphWSHandler := websocket_router.NewGraphWSHandler(appContainer)

	// 订阅图谱，应答全量快照
	wss.Use(dto.WSActionGraphSubscribe, graphWSHandler.GraphSubscribe)
	// 单笔记 AI 建议
	wss.Use(dto.WSActionNoteAnalyze, graphWSHandler.NoteAnalyze)
	// 单笔记自动连接
	wss.Use(dto.WSActionNoteAutoLink, graphWSHandler.NoteAutoLink)
	// 心跳
	wss.Use(dto.WSActionPing, graphWSHandler.Ping)

	wss.SessionAuthUse(graphWSHandler.SessionAuth)

	// 服务层事件从此刻起流向 WebSocket 订阅端
	appContainer.Events.Bind(&wsEventPublisher{wss: wss})

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		authHandler := api_router.NewAuthHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		noteLinkHandler := api_router.NewNoteLinkHandler(appContainer)
		noteHistoryHandler := api_router.NewNoteHistoryHandler(appContainer)
		edgeHandler := api_router.NewEdgeHandler(appContainer)
		graphHandler := api_router.NewGraphHandler(appContainer)
		suggestHandler := api_router.NewSuggestHandler(appContainer)
		backupHandler := api_router.NewBackupHandler(appContainer)
		statusHandler := api_router.NewStatusHandler(appContainer, wss)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		// 无需认证的接口
		api.POST("/auth", authHandler.Login)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		// WebSocket 升级入口，鉴权在连接内的 Authorization 消息完成
		api.GET("/graph/sync", wss.Run())

		// 会话认证接口
		authed := api.Group("")
		authed.Use(middleware.SessionAuthWithConfig(appContainer.TokenManager, cfg.Security.AuthToken, cfg.Security.Enabled()))
		{
			authed.GET("/note", noteHandler.Get)
			authed.POST("/note", noteHandler.Create)
			authed.PUT("/note", noteHandler.Update)
			authed.DELETE("/note", noteHandler.Delete)
			authed.GET("/notes", noteHandler.List)

			authed.GET("/note/backlinks", noteLinkHandler.Backlinks)
			authed.GET("/note/outlinks", noteLinkHandler.Outlinks)
			authed.GET("/note/mentions", noteLinkHandler.UnlinkedMentions)

			authed.POST("/note/suggest", suggestHandler.Suggest)
			authed.POST("/note/autolink", suggestHandler.AutoLink)
			authed.POST("/canvas/suggest", suggestHandler.SuggestCanvas)

			authed.GET("/note/history", noteHistoryHandler.Get)
			authed.GET("/note/histories", noteHistoryHandler.List)
			authed.GET("/note/history/diff", noteHistoryHandler.Diff)

			authed.GET("/graph", graphHandler.Snapshot)

			authed.POST("/edge", edgeHandler.Create)
			authed.PUT("/edge", edgeHandler.Update)
			authed.DELETE("/edge", edgeHandler.Delete)
			authed.GET("/edge/types", edgeHandler.RelationshipTypes)

			authed.GET("/status", statusHandler.Status)

			authed.GET("/backup/configs", backupHandler.ListConfigs)
			authed.POST("/backup/config", backupHandler.SaveConfig)
			authed.DELETE("/backup/config", backupHandler.DeleteConfig)
			authed.POST("/backup/execute", backupHandler.Execute)
			authed.GET("/backup/histories", backupHandler.ListHistories)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
