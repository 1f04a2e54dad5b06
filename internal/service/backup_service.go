package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/config"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/mailer"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/storage"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BackupService 定时备份：图谱 JSON 与笔记 Markdown 打包归档到可插拔存储
// 调度表达式为标准五段 cron，执行历史入库，失败时发送邮件告警
type BackupService interface {
	// SaveConfig 创建或更新备份配置，校验 cron 表达式与存储类型
	SaveConfig(ctx context.Context, params *dto.BackupConfigRequest) (*dto.BackupConfigDTO, error)

	// ListConfigs 返回全部备份配置
	ListConfigs(ctx context.Context) ([]*dto.BackupConfigDTO, error)

	// DeleteConfig 删除备份配置及其历史
	DeleteConfig(ctx context.Context, id int64) error

	// Execute 立即执行一次备份
	Execute(ctx context.Context, configID int64) (*dto.BackupHistoryDTO, error)

	// ExecuteDue 执行全部到期的启用配置，供调度任务调用
	ExecuteDue(ctx context.Context) error

	// ListHistories 分页返回备份历史
	ListHistories(ctx context.Context, params *dto.BackupHistoryListRequest) ([]*dto.BackupHistoryDTO, int64, error)
}

type backupService struct {
	backupRepo domain.BackupRepository
	noteRepo   domain.NoteRepository
	linkRepo   domain.LinkRepository
	edgeRepo   domain.EdgeRepository
	storages   *config.StorageConfig
	mail       *mailer.Mailer
}

// NewBackupService 创建 BackupService 实例，mail 为 nil 时不发送告警
func NewBackupService(backupRepo domain.BackupRepository, noteRepo domain.NoteRepository, linkRepo domain.LinkRepository, edgeRepo domain.EdgeRepository, storages *config.StorageConfig, mail *mailer.Mailer) BackupService {
	return &backupService{
		backupRepo: backupRepo,
		noteRepo:   noteRepo,
		linkRepo:   linkRepo,
		edgeRepo:   edgeRepo,
		storages:   storages,
		mail:       mail,
	}
}

// SaveConfig 创建或更新备份配置
func (s *backupService) SaveConfig(ctx context.Context, params *dto.BackupConfigRequest) (*dto.BackupConfigDTO, error) {
	schedule, err := cron.ParseStandard(params.Schedule)
	if err != nil {
		return nil, code.ErrorBackupScheduleInvalid.WithDetails(err.Error())
	}
	if _, err := s.storages.Resolve(params.StorageType); err != nil {
		return nil, err
	}

	now := time.Now()
	if params.ID > 0 {
		existing, err := s.backupRepo.GetConfig(ctx, params.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, code.ErrorBackupConfigNotFound
			}
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		existing.Name = params.Name
		existing.Schedule = params.Schedule
		existing.StorageType = params.StorageType
		existing.IsEnabled = params.IsEnabled
		existing.NextRunAt = schedule.Next(now)
		if err := s.backupRepo.UpdateConfig(ctx, existing); err != nil {
			return nil, code.ErrorDBQuery.WithDetails(err.Error())
		}
		return dto.BackupConfigFromDomain(existing), nil
	}

	created, err := s.backupRepo.CreateConfig(ctx, &domain.BackupConfig{
		Name:        params.Name,
		Schedule:    params.Schedule,
		StorageType: params.StorageType,
		IsEnabled:   params.IsEnabled,
		NextRunAt:   schedule.Next(now),
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return dto.BackupConfigFromDomain(created), nil
}

// ListConfigs 返回全部备份配置
func (s *backupService) ListConfigs(ctx context.Context) ([]*dto.BackupConfigDTO, error) {
	configs, err := s.backupRepo.ListConfigs(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	items := make([]*dto.BackupConfigDTO, 0, len(configs))
	for _, c := range configs {
		items = append(items, dto.BackupConfigFromDomain(c))
	}
	return items, nil
}

// DeleteConfig 删除备份配置及其历史
func (s *backupService) DeleteConfig(ctx context.Context, id int64) error {
	if _, err := s.backupRepo.GetConfig(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorBackupConfigNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if err := s.backupRepo.DeleteConfig(ctx, id); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// Execute 立即执行一次备份
func (s *backupService) Execute(ctx context.Context, configID int64) (*dto.BackupHistoryDTO, error) {
	cfg, err := s.backupRepo.GetConfig(ctx, configID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorBackupConfigNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if !cfg.IsEnabled {
		return nil, code.ErrorBackupConfigDisabled
	}

	history := s.run(ctx, cfg)
	if history.Status == domain.BackupStatusFailed {
		return dto.BackupHistoryFromDomain(history), code.ErrorBackupExecuteFailed.WithDetails(history.Message)
	}
	return dto.BackupHistoryFromDomain(history), nil
}

// ExecuteDue 执行全部到期的启用配置
func (s *backupService) ExecuteDue(ctx context.Context) error {
	due, err := s.backupRepo.ListDueConfigs(ctx, time.Now())
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	for _, cfg := range due {
		history := s.run(ctx, cfg)
		if history.Status == domain.BackupStatusFailed {
			global.Logger.Error("scheduled backup failed",
				zap.Int64("configId", cfg.ID),
				zap.String("name", cfg.Name),
				zap.String("message", history.Message),
			)
		}
	}
	return nil
}

// ListHistories 分页返回备份历史
func (s *backupService) ListHistories(ctx context.Context, params *dto.BackupHistoryListRequest) ([]*dto.BackupHistoryDTO, int64, error) {
	histories, total, err := s.backupRepo.ListHistories(ctx, params.ConfigID, params.Page, params.PageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	items := make([]*dto.BackupHistoryDTO, 0, len(histories))
	for _, h := range histories {
		items = append(items, dto.BackupHistoryFromDomain(h))
	}
	return items, total, nil
}

// run 执行一次备份并记录历史，永远返回历史行（成功或失败）
func (s *backupService) run(ctx context.Context, cfg *domain.BackupConfig) *domain.BackupHistory {
	started := time.Now()
	fileKey, size, err := s.archiveAndUpload(ctx, cfg)

	history := &domain.BackupHistory{
		ConfigID: cfg.ID,
		Status:   domain.BackupStatusSuccess,
		FileKey:  fileKey,
		Size:     size,
	}
	if err != nil {
		history.Status = domain.BackupStatusFailed
		history.Message = err.Error()
	}

	if _, herr := s.backupRepo.CreateHistory(ctx, history); herr != nil {
		global.Logger.Warn("backup history record failed",
			zap.Int64("configId", cfg.ID),
			zap.Error(herr),
		)
	}
	s.updateRunTimes(ctx, cfg, started)

	if err != nil {
		s.alert(cfg, err)
	} else {
		global.Logger.Info("backup finished",
			zap.Int64("configId", cfg.ID),
			zap.String("fileKey", fileKey),
			zap.Int64("size", size),
			zap.Duration(logger.FieldDuration, time.Since(started)),
		)
	}
	return history
}

// archiveAndUpload 构建归档并上传，返回存储键与归档字节数
func (s *backupService) archiveAndUpload(ctx context.Context, cfg *domain.BackupConfig) (string, int64, error) {
	storageConf, err := s.storages.Resolve(cfg.StorageType)
	if err != nil {
		return "", 0, err
	}
	client, err := storage.NewClient(storageConf)
	if err != nil {
		return "", 0, err
	}

	files, err := s.buildArchiveFiles(ctx)
	if err != nil {
		return "", 0, err
	}

	archiveName := fmt.Sprintf("momentum-%s-%s.zip",
		time.Now().Format("20060102-150405"), uuid.NewString()[:8])
	tempPath := filepath.Join(os.TempDir(), archiveName)
	defer os.Remove(tempPath)

	if err := util.ZipBytes(files, tempPath); err != nil {
		return "", 0, err
	}
	info, err := os.Stat(tempPath)
	if err != nil {
		return "", 0, err
	}
	f, err := os.Open(tempPath)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	fileKey, err := client.SendFile("backup/"+archiveName, f, "application/zip", time.Now())
	if err != nil {
		return "", 0, err
	}
	return fileKey, info.Size(), nil
}

// graphExport 归档中的图谱快照结构
type graphExport struct {
	ExportedAt time.Time      `json:"exportedAt"`
	Notes      []*domain.Note `json:"notes"`
	Links      []*domain.Link `json:"links"`
	Edges      []*domain.Edge `json:"edges"`
}

// buildArchiveFiles 收集归档内容：graph.json 加每条笔记一个 Markdown 文件
func (s *backupService) buildArchiveFiles(ctx context.Context) (map[string][]byte, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.linkRepo.ListAllResolved(ctx)
	if err != nil {
		return nil, err
	}
	edges, err := s.edgeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	export := &graphExport{
		ExportedAt: time.Now(),
		Notes:      notes,
		Links:      links,
		Edges:      edges,
	}
	graphJSON, err := sonic.Marshal(export)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, len(notes)+1)
	files["graph.json"] = graphJSON
	for _, n := range notes {
		files[fmt.Sprintf("notes/%d-%s.md", n.ID, fileNameSlug(n.Title))] = noteMarkdown(n)
	}
	return files, nil
}

// noteMarkdown 渲染带 frontmatter 的笔记文件
func noteMarkdown(n *domain.Note) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", n.Title)
	if len(n.Tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(n.Tags, ", "))
	}
	fmt.Fprintf(&b, "updated: %s\n", n.UpdatedAt.Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(n.Content)
	return []byte(b.String())
}

// fileNameSlug 将标题压成安全的文件名片段
func fileNameSlug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "note"
	}
	if len(slug) > 48 {
		slug = slug[:48]
	}
	return slug
}

// updateRunTimes 登记本次执行时间并按 cron 表达式推进下次执行时间
func (s *backupService) updateRunTimes(ctx context.Context, cfg *domain.BackupConfig, ranAt time.Time) {
	next := ranAt.Add(24 * time.Hour)
	if schedule, err := cron.ParseStandard(cfg.Schedule); err == nil {
		next = schedule.Next(ranAt)
	}
	if err := s.backupRepo.UpdateRunTimes(ctx, cfg.ID, ranAt, next); err != nil {
		global.Logger.Warn("backup run time update failed",
			zap.Int64("configId", cfg.ID),
			zap.Error(err),
		)
	}
}

// alert 备份失败时发送邮件告警
func (s *backupService) alert(cfg *domain.BackupConfig, err error) {
	global.Logger.Error("backup failed",
		zap.Int64("configId", cfg.ID),
		zap.String("name", cfg.Name),
		zap.Error(err),
	)
	if s.mail == nil {
		return
	}
	subject := fmt.Sprintf("Backup %q failed", cfg.Name)
	body := fmt.Sprintf("Backup config %q (storage %s) failed at %s:\n\n%s",
		cfg.Name, cfg.StorageType, time.Now().Format(time.RFC3339), err.Error())
	if merr := s.mail.Send(subject, body); merr != nil {
		global.Logger.Warn("backup alert mail failed", zap.Error(merr))
	}
}

var _ BackupService = (*backupService)(nil)
