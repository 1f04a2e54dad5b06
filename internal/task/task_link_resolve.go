package task

import (
	"context"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/app"

	"go.uber.org/zap"
)

// init 自动注册链接解析任务
func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		return &LinkResolveTask{
			app:    appContainer,
			logger: appContainer.Logger(),
		}, nil
	})
}

// LinkResolveTask 待解析链接的兜底扫描任务
// 正常情况下链接在笔记创建或改名时被解析,
// 该任务周期性补扫,处理错过在线解析的残留
type LinkResolveTask struct {
	app    *app.App
	logger *zap.Logger
}

// Name 返回任务名称
func (t *LinkResolveTask) Name() string {
	return "LinkResolveTask"
}

// Run 扫描全部存活笔记,解析指向其标题的待解析链接
func (t *LinkResolveTask) Run(ctx context.Context) error {
	pending, err := t.app.LinkRepo.CountPending(ctx)
	if err != nil {
		return err
	}
	if pending == 0 {
		return nil
	}

	notes, err := t.app.NoteRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	resolved := 0
	for _, note := range notes {
		n, err := t.app.SyncService.ResolvePending(ctx, note)
		if err != nil {
			t.logger.Warn("task log",
				zap.String("task", t.Name()),
				zap.Int64("noteId", note.ID),
				zap.String("msg", "failed"),
				zap.Error(err))
			continue
		}
		resolved += n
	}

	if resolved > 0 {
		t.logger.Info("task log",
			zap.String("task", t.Name()),
			zap.Int("resolved", resolved),
			zap.String("msg", "success"))
	}
	return nil
}

// LoopInterval 返回执行间隔
func (t *LinkResolveTask) LoopInterval() time.Duration {
	return 10 * time.Minute
}

// IsStartupRun 是否立即执行一次
func (t *LinkResolveTask) IsStartupRun() bool {
	return false
}
