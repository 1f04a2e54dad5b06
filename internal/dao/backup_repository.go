// Package dao implements the data access layer
package dao

import (
	"context"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/model"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

	"gorm.io/gorm"
)

// backupRepository implements domain.BackupRepository interface
type backupRepository struct {
	dao *Dao
}

// NewBackupRepository creates a BackupRepository instance
func NewBackupRepository(dao *Dao) domain.BackupRepository {
	return &backupRepository{dao: dao}
}

func (r *backupRepository) configToDomain(m *model.BackupConfig) *domain.BackupConfig {
	if m == nil {
		return nil
	}
	return &domain.BackupConfig{
		ID:          m.ID,
		Name:        m.Name,
		Schedule:    m.Schedule,
		StorageType: m.StorageType,
		IsEnabled:   m.IsEnabled,
		LastRunAt:   time.Time(m.LastRunAt),
		NextRunAt:   time.Time(m.NextRunAt),
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

func (r *backupRepository) historyToDomain(m *model.BackupHistory) *domain.BackupHistory {
	if m == nil {
		return nil
	}
	return &domain.BackupHistory{
		ID:        m.ID,
		ConfigID:  m.ConfigID,
		Status:    m.Status,
		FileKey:   m.FileKey,
		Size:      m.Size,
		Message:   m.Message,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// GetConfig 根据ID获取备份配置
func (r *backupRepository) GetConfig(ctx context.Context, id int64) (*domain.BackupConfig, error) {
	var m model.BackupConfig
	err := r.dao.DB().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.configToDomain(&m), nil
}

// ListConfigs 获取全部备份配置
func (r *backupRepository) ListConfigs(ctx context.Context) ([]*domain.BackupConfig, error) {
	var modelList []*model.BackupConfig
	err := r.dao.DB().WithContext(ctx).Order("id ASC").Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.BackupConfig
	for _, m := range modelList {
		results = append(results, r.configToDomain(m))
	}
	return results, nil
}

// ListDueConfigs 获取已到执行时间的启用配置
func (r *backupRepository) ListDueConfigs(ctx context.Context, now time.Time) ([]*domain.BackupConfig, error) {
	var modelList []*model.BackupConfig
	err := r.dao.DB().WithContext(ctx).
		Where("is_enabled = ? AND (next_run_at IS NULL OR next_run_at <= ?)", true, timex.Time(now)).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.BackupConfig
	for _, m := range modelList {
		results = append(results, r.configToDomain(m))
	}
	return results, nil
}

// CreateConfig 创建备份配置
func (r *backupRepository) CreateConfig(ctx context.Context, config *domain.BackupConfig) (*domain.BackupConfig, error) {
	now := timex.Now()
	m := &model.BackupConfig{
		Name:        config.Name,
		Schedule:    config.Schedule,
		StorageType: config.StorageType,
		IsEnabled:   config.IsEnabled,
		NextRunAt:   timex.Time(config.NextRunAt),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.configToDomain(m), nil
}

// UpdateConfig 更新备份配置
func (r *backupRepository) UpdateConfig(ctx context.Context, config *domain.BackupConfig) error {
	return r.dao.DB().WithContext(ctx).
		Model(&model.BackupConfig{}).
		Where("id = ?", config.ID).
		Updates(map[string]interface{}{
			"name":         config.Name,
			"schedule":     config.Schedule,
			"storage_type": config.StorageType,
			"is_enabled":   config.IsEnabled,
			"next_run_at":  timex.Time(config.NextRunAt),
			"updated_at":   timex.Now(),
		}).Error
}

// DeleteConfig 删除备份配置及其历史
func (r *backupRepository) DeleteConfig(ctx context.Context, id int64) error {
	return r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("config_id = ?", id).Delete(&model.BackupHistory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.BackupConfig{}).Error
	})
}

// UpdateRunTimes 更新配置的执行时间
func (r *backupRepository) UpdateRunTimes(ctx context.Context, id int64, lastRun, nextRun time.Time) error {
	return r.dao.DB().WithContext(ctx).
		Model(&model.BackupConfig{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_run_at": timex.Time(lastRun),
			"next_run_at": timex.Time(nextRun),
		}).Error
}

// CreateHistory 创建备份历史记录
func (r *backupRepository) CreateHistory(ctx context.Context, history *domain.BackupHistory) (*domain.BackupHistory, error) {
	m := &model.BackupHistory{
		ConfigID:  history.ConfigID,
		Status:    history.Status,
		FileKey:   history.FileKey,
		Size:      history.Size,
		Message:   history.Message,
		CreatedAt: timex.Now(),
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.historyToDomain(m), nil
}

// ListHistories 分页获取备份历史，configID 为 0 时不过滤
func (r *backupRepository) ListHistories(ctx context.Context, configID int64, page, pageSize int) ([]*domain.BackupHistory, int64, error) {
	db := r.dao.DB().WithContext(ctx).Model(&model.BackupHistory{})
	if configID > 0 {
		db = db.Where("config_id = ?", configID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var modelList []*model.BackupHistory
	err := db.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, err
	}

	var results []*domain.BackupHistory
	for _, m := range modelList {
		results = append(results, r.historyToDomain(m))
	}
	return results, total, nil
}

// Ensure backupRepository implements domain.BackupRepository
var _ domain.BackupRepository = (*backupRepository)(nil)
