package model

import "github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

const (
	TableNameBackupConfig  = "backup_config"
	TableNameBackupHistory = "backup_history"
)

// BackupConfig mapped from table <backup_config>
// Schedule 为 cron 表达式，NextRunAt 由调度任务维护
type BackupConfig struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Name        string     `gorm:"column:name;not null" json:"name" form:"name"`
	Schedule    string     `gorm:"column:schedule;not null" json:"schedule" form:"schedule"`
	StorageType string     `gorm:"column:storage_type;not null" json:"storageType" form:"storageType"`
	IsEnabled   bool       `gorm:"column:is_enabled;default:true" json:"isEnabled" form:"isEnabled"`
	LastRunAt   timex.Time `gorm:"column:last_run_at;type:datetime;default:NULL" json:"lastRunAt" form:"lastRunAt"`
	NextRunAt   timex.Time `gorm:"column:next_run_at;type:datetime;default:NULL;index:idx_backup_next_run" json:"nextRunAt" form:"nextRunAt"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName BackupConfig's table name
func (*BackupConfig) TableName() string {
	return TableNameBackupConfig
}

// BackupHistory mapped from table <backup_history>
type BackupHistory struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	ConfigID  int64      `gorm:"column:config_id;not null;index:idx_backup_history_config" json:"configId" form:"configId"`
	Status    string     `gorm:"column:status;not null" json:"status" form:"status"`
	FileKey   string     `gorm:"column:file_key" json:"fileKey" form:"fileKey"`
	Size      int64      `gorm:"column:size;default:0" json:"size" form:"size"`
	Message   string     `gorm:"column:message" json:"message" form:"message"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName BackupHistory's table name
func (*BackupHistory) TableName() string {
	return TableNameBackupHistory
}
