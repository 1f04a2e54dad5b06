// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/dao"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/service"
	pkgapp "github.com/Nicoding1996/momentum-notes-sub000/pkg/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/llm"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/mailer"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/workerpool"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/writequeue"
	"golang.org/x/mod/semver"

	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// Repository 层
	NoteRepo        domain.NoteRepository
	LinkRepo        domain.LinkRepository
	EdgeRepo        domain.EdgeRepository
	NoteHistoryRepo domain.NoteHistoryRepository
	BackupRepo      domain.BackupRepository

	// Service 层
	ScanService        service.ScanService
	SyncService        service.SyncService
	NoteService        service.NoteService
	NoteLinkService    service.NoteLinkService
	EdgeService        service.EdgeService
	GraphService       service.GraphService
	RankService        service.RankService
	SuggestService     service.SuggestService
	AutoLinkService    service.AutoLinkService
	NoteHistoryService service.NoteHistoryService
	BackupService      service.BackupService
	AuthService        service.AuthService
	StatusService      service.StatusService
	TunnelService      service.TunnelService

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	// Events 事件中继，路由层建好 WebSocket 中心后 Bind 进来
	Events *EventRelay

	// StartTime 进程启动时间，用于 /api/status 的 uptime
	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		Events:     NewEventRelay(),
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	// 初始化 DAO（使用依赖注入）
	dbConfig := cfg.GetDatabaseConfig()
	a.Dao = dao.New(db, context.Background(),
		dao.WithConfig(&dbConfig),
		dao.WithLogger(logger),
		dao.WithWriteQueueManager(a.writeQueueMgr),
	)

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.SigningKey(),
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化 Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.LinkRepo = dao.NewLinkRepository(a.Dao)
	a.EdgeRepo = dao.NewEdgeRepository(a.Dao)
	a.NoteHistoryRepo = dao.NewNoteHistoryRepository(a.Dao)
	a.BackupRepo = dao.NewBackupRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := cfg.GetServiceConfig()

	// AI 客户端与备份邮件通知
	llmClient := llm.NewClient(cfg.GetLLMConfig(), llm.WithLogger(logger))
	mail := mailer.NewMailer(&cfg.Mail, mailer.WithLogger(logger))

	// 初始化 Service 层（依赖注入）
	// 依赖顺序：扫描 -> 同步 -> 笔记，排序 -> 建议 -> 自动连接
	a.ScanService = service.NewScanService(svcConfig)
	a.SyncService = service.NewSyncService(a.NoteRepo, a.LinkRepo, a.EdgeRepo, a.ScanService, a.Events)
	a.NoteHistoryService = service.NewNoteHistoryService(a.NoteRepo, a.NoteHistoryRepo, svcConfig)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.LinkRepo, a.SyncService, a.NoteHistoryService, a.Events, svcConfig)
	a.NoteLinkService = service.NewNoteLinkService(a.NoteRepo, a.LinkRepo, a.ScanService)
	a.EdgeService = service.NewEdgeService(a.NoteRepo, a.EdgeRepo, a.Events)
	a.GraphService = service.NewGraphService(a.NoteRepo, a.EdgeRepo)
	a.RankService = service.NewRankService(a.NoteRepo, a.LinkRepo, a.EdgeRepo, svcConfig)
	a.SuggestService = service.NewSuggestService(a.NoteRepo, a.RankService, llmClient, svcConfig)
	a.AutoLinkService = service.NewAutoLinkService(a.EdgeRepo, a.SuggestService, a.RankService, a.Events)
	a.BackupService = service.NewBackupService(a.BackupRepo, a.NoteRepo, a.LinkRepo, a.EdgeRepo, &cfg.Storage, mail)
	a.AuthService = service.NewAuthService(cfg.Security.Password, a.TokenManager, cfg.GetTokenExpiry())
	a.StatusService = service.NewStatusService(a.NoteRepo, a.LinkRepo, a.EdgeRepo, a.workerPool, a.writeQueueMgr, a.StartTime, Version, filepath.Dir(cfg.Database.Path))
	a.TunnelService = service.NewTunnelService(&cfg.Tunnel)

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTask 提交任务到 Worker Pool
// 返回错误如果池已满或已关闭
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// CheckVersion 获取版本信息
func (a *App) CheckVersion(pluginVersion string) pkgapp.CheckVersionInfo {
	a.checkVersionMu.RLock()
	defer a.checkVersionMu.RUnlock()

	cv := a.checkVersion

	// 比较插件版本
	if pluginVersion != "" && cv.PluginVersionNewName != "" {
		v1 := pluginVersion
		if !strings.HasPrefix(v1, "v") {
			v1 = "v" + v1
		}
		v2 := cv.PluginVersionNewName
		if !strings.HasPrefix(v2, "v") {
			v2 = "v" + v2
		}
		cv.PluginVersionIsNew = semver.Compare(v2, v1) > 0
	}

	// 如果没有更新，把版本名称设置为空
	if !cv.VersionIsNew {
		cv.VersionNewName = ""
	}
	if !cv.PluginVersionIsNew {
		cv.PluginVersionNewName = ""
	}

	// 返回给客户端的版本号不带 v 前缀
	cv.VersionNewName = strings.TrimPrefix(cv.VersionNewName, "v")
	cv.PluginVersionNewName = strings.TrimPrefix(cv.PluginVersionNewName, "v")
	// 补充链接信息
	if cv.VersionNewLink == "" && cv.VersionNewName != "" {
		cv.VersionNewLink = "https://github.com/Nicoding1996/momentum-notes-sub000/releases/tag/" + cv.VersionNewName
	}
	if cv.PluginVersionNewLink == "" && cv.PluginVersionNewName != "" {
		cv.PluginVersionNewLink = "https://github.com/Nicoding1996/momentum-notes-plugin/releases/tag/" + cv.PluginVersionNewName
	}

	return cv
}

// SetCheckVersionInfo 设置版本检查信息
func (a *App) SetCheckVersionInfo(info pkgapp.CheckVersionInfo) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()
	a.checkVersion = info
}

// Validator 获取验证器
func (a *App) Validator() pkgapp.ValidatorInterface {
	if binding.Validator == nil {
		return nil
	}
	if v, ok := binding.Validator.(pkgapp.ValidatorInterface); ok {
		return v
	}
	return nil
}

// IsReturnSuccess 是否返回成功响应
func (a *App) IsReturnSuccess() bool {
	return a.config.App.IsReturnSussess
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// ExecuteWrite 执行写操作（通过 Write Queue 按笔记串行化）
// noteID: 笔记 ID，用于确定写队列
// fn: 写操作函数
func (a *App) ExecuteWrite(ctx context.Context, noteID int64, fn func() error) error {
	return a.writeQueueMgr.Execute(ctx, noteID, fn)
}

// WorkerPool 获取 Worker Pool（用于高级操作）
func (a *App) WorkerPool() *workerpool.Pool {
	return a.workerPool
}

// WriteQueueManager 获取 Write Queue Manager（用于高级操作）
func (a *App) WriteQueueManager() *writequeue.Manager {
	return a.writeQueueMgr
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Tunnel -> Worker Pool -> Write Queue Manager -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 0. 关闭隧道（停止对外暴露）
	if a.TunnelService != nil {
		if err := a.TunnelService.Stop(ctx); err != nil {
			a.logger.Warn("Tunnel shutdown error", zap.Error(err))
		}
	}

	// 1. 关闭 Worker Pool（停止接受新任务，等待现有任务完成）
	if a.workerPool != nil {
		a.logger.Info("Shutting down worker pool...")
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		} else {
			a.logger.Info("Worker pool shutdown completed")
		}
	}

	// 2. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		} else {
			a.logger.Info("write queue manager shutdown completed")
		}
	}

	// 3. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 4. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
