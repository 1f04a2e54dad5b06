package domain

import "time"

// 备份执行状态
const (
	BackupStatusSuccess = "success"
	BackupStatusFailed  = "failed"
)

// BackupConfig 定时备份配置，Schedule 为 cron 表达式
type BackupConfig struct {
	ID          int64
	Name        string
	Schedule    string
	StorageType string
	IsEnabled   bool
	LastRunAt   time.Time
	NextRunAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BackupHistory 一次备份执行的结果记录
type BackupHistory struct {
	ID        int64
	ConfigID  int64
	Status    string
	FileKey   string
	Size      int64
	Message   string
	CreatedAt time.Time
}

// IsDue 判断配置是否到达执行时间
func (c *BackupConfig) IsDue(now time.Time) bool {
	if !c.IsEnabled {
		return false
	}
	if c.NextRunAt.IsZero() {
		return true
	}
	return !now.Before(c.NextRunAt)
}
