package task

import (
	"context"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"

	"go.uber.org/zap"
)

// init 自动注册历史清理任务
func init() {
	RegisterWithApp(NewHistoryPruneTask)
}

// HistoryPruneTask 按保留策略清理笔记历史版本
// 超出保留版本数且早于保留期的旧版本会被删除
type HistoryPruneTask struct {
	app    *app.App
	logger *zap.Logger
}

// NewHistoryPruneTask 创建历史清理任务
// 保留版本数与保留期均未配置时返回 (nil, nil) 表示禁用
func NewHistoryPruneTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config().App
	if cfg.HistoryKeepVersions <= 0 && cfg.HistoryRetentionTime == "" {
		return nil, nil
	}

	return &HistoryPruneTask{
		app:    appContainer,
		logger: appContainer.Logger(),
	}, nil
}

// Name 返回任务名称
func (t *HistoryPruneTask) Name() string {
	return "HistoryPruneTask"
}

// Run 执行历史清理
func (t *HistoryPruneTask) Run(ctx context.Context) error {
	err := t.app.NoteHistoryService.Prune(ctx)
	if err != nil {
		t.logger.Error("task log",
			zap.String("task", t.Name()),
			zap.String("msg", "failed"),
			zap.Error(err))
	}
	return err
}

// LoopInterval 返回执行间隔
func (t *HistoryPruneTask) LoopInterval() time.Duration {
	return 1 * time.Hour
}

// IsStartupRun 是否立即执行一次
func (t *HistoryPruneTask) IsStartupRun() bool {
	return true
}
