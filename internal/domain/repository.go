// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"time"
)

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据ID获取笔记（排除已删除）
	GetByID(ctx context.Context, id int64) (*Note, error)

	// GetByTitle 根据标题获取笔记，忽略大小写（排除已删除）
	GetByTitle(ctx context.Context, title string) (*Note, error)

	// ListAll 获取全部存活笔记
	ListAll(ctx context.Context) ([]*Note, error)

	// ListByIDs 根据ID集合获取存活笔记
	ListByIDs(ctx context.Context, ids []int64) ([]*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 更新笔记
	Update(ctx context.Context, note *Note) (*Note, error)

	// UpdatePosition 更新画布位置
	UpdatePosition(ctx context.Context, id int64, x, y float64) error

	// SoftDelete 标记删除
	SoftDelete(ctx context.Context, id int64) error

	// DeletePhysicalByTime 物理删除早于指定时间标记删除的笔记，返回被清除的笔记ID
	DeletePhysicalByTime(ctx context.Context, before time.Time) ([]int64, error)

	// List 分页获取笔记列表，keyword 匹配标题或内容
	List(ctx context.Context, keyword string, page, pageSize int) ([]*Note, error)

	// ListCount 获取笔记数量
	ListCount(ctx context.Context, keyword string) (int64, error)

	// CountAll 获取存活笔记总数
	CountAll(ctx context.Context) (int64, error)
}

// LinkRepository 链接仓储接口
// 链接行仅由同步器写入，仓储不提供独立的单条创建方法
type LinkRepository interface {
	// ListBySource 获取源笔记的全部链接
	ListBySource(ctx context.Context, sourceNoteID int64) ([]*Link, error)

	// ListResolvedByTarget 获取指向目标笔记的已解析链接
	ListResolvedByTarget(ctx context.Context, targetNoteID int64) ([]*Link, error)

	// ListResolvedBySource 获取源笔记的已解析链接
	ListResolvedBySource(ctx context.Context, sourceNoteID int64) ([]*Link, error)

	// ListPendingByTitle 获取目标标题匹配的未解析链接，忽略大小写
	ListPendingByTitle(ctx context.Context, title string) ([]*Link, error)

	// ListSourceIDsByTarget 获取已链接到目标笔记的源笔记ID集合
	ListSourceIDsByTarget(ctx context.Context, targetNoteID int64) ([]int64, error)

	// ListAllResolved 获取全部已解析链接
	ListAllResolved(ctx context.Context) ([]*Link, error)

	// Resolve 将未解析链接指向目标笔记
	Resolve(ctx context.Context, linkID, targetNoteID int64) error

	// CommitSync 在单个事务内提交一次同步：笔记行、链接增删改与镜像连线
	CommitSync(ctx context.Context, commit *SyncCommit) (*SyncResult, error)

	// DeleteBySource 删除源笔记的全部链接
	DeleteBySource(ctx context.Context, sourceNoteID int64) error

	// CountAll 获取链接总数
	CountAll(ctx context.Context) (int64, error)

	// CountPending 获取未解析链接数量
	CountPending(ctx context.Context) (int64, error)
}

// EdgeRepository 连线仓储接口
type EdgeRepository interface {
	// GetByID 根据ID获取连线
	GetByID(ctx context.Context, id int64) (*Edge, error)

	// Create 创建连线
	Create(ctx context.Context, edge *Edge) (*Edge, error)

	// Update 更新连线的关系类型与标签
	Update(ctx context.Context, edge *Edge) error

	// Delete 删除连线
	Delete(ctx context.Context, id int64) error

	// ExistsBetween 判断两个笔记之间是否已有连线，方向无关
	ExistsBetween(ctx context.Context, noteA, noteB int64) (bool, error)

	// ListByNote 获取关联指定笔记的全部连线
	ListByNote(ctx context.Context, noteID int64) ([]*Edge, error)

	// ListAll 获取全部连线
	ListAll(ctx context.Context) ([]*Edge, error)

	// CountAll 获取连线总数
	CountAll(ctx context.Context) (int64, error)
}

// NoteHistoryRepository 笔记历史仓储接口
type NoteHistoryRepository interface {
	// GetByID 根据ID获取历史记录
	GetByID(ctx context.Context, id int64) (*NoteHistory, error)

	// Create 创建历史记录
	Create(ctx context.Context, history *NoteHistory) (*NoteHistory, error)

	// ListByNoteID 根据笔记ID分页获取历史记录
	ListByNoteID(ctx context.Context, noteID int64, page, pageSize int) ([]*NoteHistory, int64, error)

	// GetLatestVersion 获取笔记的最新版本号
	GetLatestVersion(ctx context.Context, noteID int64) (int64, error)

	// ListNoteIDsWithOldHistory 获取存在早于截止时间历史记录的笔记ID列表
	ListNoteIDsWithOldHistory(ctx context.Context, cutoff time.Time) ([]int64, error)

	// DeleteOldVersions 删除早于截止时间的旧版本，保留最近 keepVersions 个
	DeleteOldVersions(ctx context.Context, noteID int64, cutoff time.Time, keepVersions int) error

	// DeleteByNoteID 删除笔记的全部历史记录
	DeleteByNoteID(ctx context.Context, noteID int64) error
}

// BackupRepository 备份配置与历史仓储接口
type BackupRepository interface {
	// GetConfig 根据ID获取备份配置
	GetConfig(ctx context.Context, id int64) (*BackupConfig, error)

	// ListConfigs 获取全部备份配置
	ListConfigs(ctx context.Context) ([]*BackupConfig, error)

	// ListDueConfigs 获取已到执行时间的启用配置
	ListDueConfigs(ctx context.Context, now time.Time) ([]*BackupConfig, error)

	// CreateConfig 创建备份配置
	CreateConfig(ctx context.Context, config *BackupConfig) (*BackupConfig, error)

	// UpdateConfig 更新备份配置
	UpdateConfig(ctx context.Context, config *BackupConfig) error

	// DeleteConfig 删除备份配置及其历史
	DeleteConfig(ctx context.Context, id int64) error

	// UpdateRunTimes 更新配置的执行时间
	UpdateRunTimes(ctx context.Context, id int64, lastRun, nextRun time.Time) error

	// CreateHistory 创建备份历史记录
	CreateHistory(ctx context.Context, history *BackupHistory) (*BackupHistory, error)

	// ListHistories 分页获取备份历史，configID 为 0 时不过滤
	ListHistories(ctx context.Context, configID int64, page, pageSize int) ([]*BackupHistory, int64, error)
}
