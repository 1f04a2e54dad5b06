package service

import (
	"archive/zip"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/config"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/stretchr/testify/require"
)

// newBackupEnv 搭起落到临时目录的本地存储备份服务
func newBackupEnv(t *testing.T, env *testEnv) (BackupService, *config.StorageConfig) {
	t.Helper()
	storages := &config.StorageConfig{
		LocalFS: config.LocalFSConfig{
			IsEnabled: true,
			SavePath:  t.TempDir(),
		},
	}
	svc := NewBackupService(env.backupRepo, env.noteRepo, env.linkRepo, env.edgeRepo, storages, nil)
	return svc, storages
}

func TestBackupSaveConfigValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc, _ := newBackupEnv(t, env)

	_, err := svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		Name:        "nightly",
		Schedule:    "every day at 3am",
		StorageType: "localfs",
	})
	assertCode(t, err, code.ErrorBackupScheduleInvalid)

	_, err = svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		Name:        "nightly",
		Schedule:    "0 3 * * *",
		StorageType: "webdav",
	})
	assertCode(t, err, code.ErrorInvalidStorageType)

	cfg, err := svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		Name:        "nightly",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
		IsEnabled:   true,
	})
	require.NoError(t, err)
	require.NotZero(t, cfg.ID)
	require.True(t, time.Time(cfg.NextRunAt).After(time.Now()))
}

func TestBackupSaveConfigUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc, _ := newBackupEnv(t, env)

	cfg, err := svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		Name:        "nightly",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
		IsEnabled:   true,
	})
	require.NoError(t, err)

	updated, err := svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		ID:          cfg.ID,
		Name:        "weekly",
		Schedule:    "0 4 * * 0",
		StorageType: "localfs",
		IsEnabled:   false,
	})
	require.NoError(t, err)
	require.Equal(t, cfg.ID, updated.ID)
	require.Equal(t, "weekly", updated.Name)
	require.False(t, updated.IsEnabled)

	_, err = svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		ID:          4242,
		Name:        "ghost",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
	})
	assertCode(t, err, code.ErrorBackupConfigNotFound)
}

func TestBackupExecuteWritesArchive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc, _ := newBackupEnv(t, env)

	createNote(t, env, "Oceans", "studying [[Whales]] up close", "marine")
	createNote(t, env, "Whales", "large marine mammals", "marine")

	cfg, err := svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		Name:        "nightly",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
		IsEnabled:   true,
	})
	require.NoError(t, err)

	history, err := svc.Execute(ctx, cfg.ID)
	require.NoError(t, err)
	require.Equal(t, domain.BackupStatusSuccess, history.Status)
	require.Greater(t, history.Size, int64(0))

	info, err := os.Stat(history.FileKey)
	require.NoError(t, err)
	require.Equal(t, history.Size, info.Size())

	// 归档包含图谱快照与每条笔记的 Markdown 文件
	r, err := zip.OpenReader(history.FileKey)
	require.NoError(t, err)
	defer r.Close()
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	require.Contains(t, names, "graph.json")
	var noteFiles int
	for _, name := range names {
		if strings.HasPrefix(name, "notes/") && strings.HasSuffix(name, ".md") {
			noteFiles++
		}
	}
	require.Equal(t, 2, noteFiles)

	// 执行后推进运行时间
	configs, err := svc.ListConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	require.False(t, time.Time(configs[0].LastRunAt).IsZero())
	require.True(t, time.Time(configs[0].NextRunAt).After(time.Now()))

	histories, total, err := svc.ListHistories(ctx, &dto.BackupHistoryListRequest{ConfigID: cfg.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, domain.BackupStatusSuccess, histories[0].Status)
}

func TestBackupExecuteDisabledConfig(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc, _ := newBackupEnv(t, env)

	cfg, err := svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		Name:        "paused",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
		IsEnabled:   false,
	})
	require.NoError(t, err)

	_, err = svc.Execute(ctx, cfg.ID)
	assertCode(t, err, code.ErrorBackupConfigDisabled)

	_, err = svc.Execute(ctx, 4242)
	assertCode(t, err, code.ErrorBackupConfigNotFound)
}

func TestBackupExecuteFailureRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc, storages := newBackupEnv(t, env)

	cfg, err := svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		Name:        "nightly",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
		IsEnabled:   true,
	})
	require.NoError(t, err)

	// 配置保存后存储被关掉，执行时解析失败
	storages.LocalFS.IsEnabled = false

	history, err := svc.Execute(ctx, cfg.ID)
	assertCode(t, err, code.ErrorBackupExecuteFailed)
	require.NotNil(t, history)
	require.Equal(t, domain.BackupStatusFailed, history.Status)
	require.NotEmpty(t, history.Message)

	histories, total, err := svc.ListHistories(ctx, &dto.BackupHistoryListRequest{ConfigID: cfg.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, domain.BackupStatusFailed, histories[0].Status)
}

func TestBackupExecuteDue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc, _ := newBackupEnv(t, env)
	createNote(t, env, "Oceans", "deep content")

	due, err := env.backupRepo.CreateConfig(ctx, &domain.BackupConfig{
		Name:        "overdue",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
		IsEnabled:   true,
		NextRunAt:   time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = env.backupRepo.CreateConfig(ctx, &domain.BackupConfig{
		Name:        "not yet",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
		IsEnabled:   true,
		NextRunAt:   time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, svc.ExecuteDue(ctx))

	histories, total, err := svc.ListHistories(ctx, &dto.BackupHistoryListRequest{ConfigID: due.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, domain.BackupStatusSuccess, histories[0].Status)

	_, total, err = svc.ListHistories(ctx, &dto.BackupHistoryListRequest{ConfigID: 0, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestBackupDeleteConfig(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc, _ := newBackupEnv(t, env)

	cfg, err := svc.SaveConfig(ctx, &dto.BackupConfigRequest{
		Name:        "nightly",
		Schedule:    "0 3 * * *",
		StorageType: "localfs",
		IsEnabled:   true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteConfig(ctx, cfg.ID))

	err = svc.DeleteConfig(ctx, cfg.ID)
	assertCode(t, err, code.ErrorBackupConfigNotFound)

	configs, err := svc.ListConfigs(ctx)
	require.NoError(t, err)
	require.Empty(t, configs)
}
