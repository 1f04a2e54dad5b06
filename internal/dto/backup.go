package dto

import (
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
)

// BackupConfigRequest 备份配置请求
type BackupConfigRequest struct {
	ID          int64  `json:"id" form:"id" example:"1"`
	Name        string `json:"name" form:"name" binding:"required" example:"nightly"`
	Schedule    string `json:"schedule" form:"schedule" binding:"required" example:"0 3 * * *"`
	StorageType string `json:"storageType" form:"storageType" binding:"required,oneof=localfs oss r2 s3 webdav git" example:"localfs"`
	IsEnabled   bool   `json:"isEnabled" form:"isEnabled" example:"true"`
}

// BackupExecuteRequest 备份执行请求
type BackupExecuteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required" example:"1"`
}

// BackupDeleteRequest 备份配置删除请求
type BackupDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required" example:"1"`
}

// BackupHistoryListRequest 备份历史列表请求
type BackupHistoryListRequest struct {
	ConfigID int64 `json:"configId" form:"configId" example:"1"`
	Page     int   `json:"page" form:"page" example:"1"`
	PageSize int   `json:"pageSize" form:"pageSize" example:"10"`
}

// BackupConfigDTO 备份配置 DTO
type BackupConfigDTO struct {
	ID          int64      `json:"id"`          // 配置ID
	Name        string     `json:"name"`        // 配置名称
	Schedule    string     `json:"schedule"`    // Cron表达式
	StorageType string     `json:"storageType"` // 存储类型
	IsEnabled   bool       `json:"isEnabled"`   // 是否启用
	LastRunAt   timex.Time `json:"lastRunAt"`   // 上次运行时间
	NextRunAt   timex.Time `json:"nextRunAt"`   // 下次运行时间
	CreatedAt   timex.Time `json:"createdAt"`   // 创建时间
	UpdatedAt   timex.Time `json:"updatedAt"`   // 更新时间
}

// BackupConfigFromDomain builds a BackupConfigDTO from the domain model
func BackupConfigFromDomain(c *domain.BackupConfig) *BackupConfigDTO {
	if c == nil {
		return nil
	}
	return &BackupConfigDTO{
		ID:          c.ID,
		Name:        c.Name,
		Schedule:    c.Schedule,
		StorageType: c.StorageType,
		IsEnabled:   c.IsEnabled,
		LastRunAt:   timex.Time(c.LastRunAt),
		NextRunAt:   timex.Time(c.NextRunAt),
		CreatedAt:   timex.Time(c.CreatedAt),
		UpdatedAt:   timex.Time(c.UpdatedAt),
	}
}

// BackupHistoryDTO 备份历史 DTO
type BackupHistoryDTO struct {
	ID        int64      `json:"id"`        // 历史记录ID
	ConfigID  int64      `json:"configId"`  // 配置ID
	Status    string     `json:"status"`    // 执行状态 success/failed
	FileKey   string     `json:"fileKey"`   // 归档文件键
	Size      int64      `json:"size"`      // 归档大小
	Message   string     `json:"message"`   // 结果消息
	CreatedAt timex.Time `json:"createdAt"` // 执行时间
}

// BackupHistoryFromDomain builds a BackupHistoryDTO from the domain model
func BackupHistoryFromDomain(h *domain.BackupHistory) *BackupHistoryDTO {
	if h == nil {
		return nil
	}
	return &BackupHistoryDTO{
		ID:        h.ID,
		ConfigID:  h.ConfigID,
		Status:    h.Status,
		FileKey:   h.FileKey,
		Size:      h.Size,
		Message:   h.Message,
		CreatedAt: timex.Time(h.CreatedAt),
	}
}
