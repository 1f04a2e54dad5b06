package dto

import (
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
)

// VersionRequest 版本查询请求，插件端携带自身版本以获取更新提示
type VersionRequest struct {
	PluginVersion string `json:"pluginVersion" form:"pluginVersion" example:"1.2.0"`
}

// VersionDTO 版本信息 DTO
type VersionDTO struct {
	Version              string `json:"version"`                        // 当前版本
	GitTag               string `json:"gitTag"`                         // Git 标签
	BuildTime            string `json:"buildTime"`                      // 构建时间
	GoVersion            string `json:"goVersion"`                      // Go 版本
	VersionIsNew         bool   `json:"versionIsNew"`                   // 服务端是否有新版本
	VersionNewName       string `json:"versionNewName,omitempty"`       // 服务端新版本号
	VersionNewLink       string `json:"versionNewLink,omitempty"`       // 服务端新版本链接
	PluginVersionIsNew   bool   `json:"pluginVersionIsNew"`             // 插件是否有新版本
	PluginVersionNewName string `json:"pluginVersionNewName,omitempty"` // 插件新版本号
	PluginVersionNewLink string `json:"pluginVersionNewLink,omitempty"` // 插件新版本链接
}

// StatusDTO 运行状态 DTO
type StatusDTO struct {
	Version      string         `json:"version"`      // 当前版本
	Uptime       string         `json:"uptime"`       // 运行时长
	NoteCount    int64          `json:"noteCount"`    // 笔记总数
	LinkCount    int64          `json:"linkCount"`    // 链接总数
	PendingLinks int64          `json:"pendingLinks"` // 未解析链接数
	EdgeCount    int64          `json:"edgeCount"`    // 关系总数
	Goroutines   int            `json:"goroutines"`   // 协程数
	MemoryMB     float64        `json:"memoryMb"`     // 内存占用(MB)
	CPUPercent   float64        `json:"cpuPercent"`   // CPU 占用率
	DiskUsedMB   float64        `json:"diskUsedMb"`   // 数据目录磁盘占用(MB)
	Clients      int            `json:"clients"`      // 当前 WebSocket 连接数
	Workers      WorkerStatsDTO `json:"workers"`      // 异步任务池与写入队列
}

// WorkerStatsDTO 异步任务池与写入队列计数
type WorkerStatsDTO struct {
	PoolWorkers int   `json:"poolWorkers"` // 任务池 worker 数量
	PoolActive  int64 `json:"poolActive"`  // 执行中任务数
	PoolQueued  int   `json:"poolQueued"`  // 排队任务数
	WriteQueues int   `json:"writeQueues"` // 活跃写入队列数
}

// AuthRequest 登录请求
type AuthRequest struct {
	Password string `json:"password" form:"password" binding:"required" example:"secret"`
}

// AuthTokenDTO 登录令牌 DTO
type AuthTokenDTO struct {
	Token     string     `json:"token"`     // 访问令牌
	ExpiredAt timex.Time `json:"expiredAt"` // 过期时间
}
