package task

import (
	"context"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"

	"go.uber.org/zap"
)

// init 自动注册清理任务
func init() {
	RegisterWithApp(NewNoteCleanupTask)
}

// NoteCleanupTask 软删除笔记的物理清理任务
type NoteCleanupTask struct {
	app      *app.App
	logger   *zap.Logger
	interval time.Duration
	firstRun bool
}

// NewNoteCleanupTask 创建清理任务
// 保留时长未配置或为零时返回 (nil, nil) 表示禁用
func NewNoteCleanupTask(appContainer *app.App) (Task, error) {
	retentionTimeStr := appContainer.Config().App.SoftDeleteRetentionTime
	if retentionTimeStr == "" {
		return nil, nil
	}
	duration, err := util.ParseDuration(retentionTimeStr)
	if err != nil {
		return nil, err
	}

	if duration <= 0 {
		return nil, nil
	}

	return &NoteCleanupTask{
		app:      appContainer,
		logger:   appContainer.Logger(),
		interval: 10 * time.Minute,
		firstRun: true,
	}, nil
}

// Name 返回任务名称
func (t *NoteCleanupTask) Name() string {
	return "NoteCleanupTask"
}

// Run 执行清理任务
func (t *NoteCleanupTask) Run(ctx context.Context) error {
	status := "scheduled"
	if t.firstRun {
		status = "first-run"
		t.firstRun = false
	}

	deleted, err := t.app.NoteService.Cleanup(ctx)

	if err != nil {
		t.logger.Error(t.Name()+" failed ["+status+"]: ", zap.Error(err))
	} else if deleted > 0 {
		t.logger.Info(t.Name()+" completed ["+status+"]", zap.Int64("deleted", deleted))
	}

	return err
}

// LoopInterval 返回执行间隔
func (t *NoteCleanupTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *NoteCleanupTask) IsStartupRun() bool {
	return true
}
