package service

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/workerpool"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/writequeue"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

const bytesPerMB = 1024 * 1024

// StatusService 汇总运行状态：图谱规模、进程资源与数据目录占用
type StatusService interface {
	// Status 返回完整运行状态
	Status(ctx context.Context) (*dto.StatusDTO, error)
}

type statusService struct {
	noteRepo    domain.NoteRepository
	linkRepo    domain.LinkRepository
	edgeRepo    domain.EdgeRepository
	pool        *workerpool.Pool
	writeQueues *writequeue.Manager
	startTime   time.Time
	version     string
	dataDir     string
}

// NewStatusService 创建 StatusService 实例
// dataDir 为空时跳过磁盘统计，pool / writeQueues 为 nil 时对应计数为零值
func NewStatusService(noteRepo domain.NoteRepository, linkRepo domain.LinkRepository, edgeRepo domain.EdgeRepository, pool *workerpool.Pool, writeQueues *writequeue.Manager, startTime time.Time, version string, dataDir string) StatusService {
	return &statusService{
		noteRepo:    noteRepo,
		linkRepo:    linkRepo,
		edgeRepo:    edgeRepo,
		pool:        pool,
		writeQueues: writeQueues,
		startTime:   startTime,
		version:     version,
		dataDir:     dataDir,
	}
}

// Status 返回完整运行状态
// 统计项各自独立失败，任何一项出错都不拦截整个响应
func (s *statusService) Status(ctx context.Context) (*dto.StatusDTO, error) {
	status := &dto.StatusDTO{
		Version:    s.version,
		Uptime:     time.Since(s.startTime).Truncate(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
	}

	status.NoteCount = s.count(ctx, "notes", s.noteRepo.CountAll)
	status.LinkCount = s.count(ctx, "links", s.linkRepo.CountAll)
	status.PendingLinks = s.count(ctx, "pendingLinks", s.linkRepo.CountPending)
	status.EdgeCount = s.count(ctx, "edges", s.edgeRepo.CountAll)

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpuPct, err := p.CPUPercent(); err == nil {
			status.CPUPercent = cpuPct
		}
		if memInfo, err := p.MemoryInfo(); err == nil {
			status.MemoryMB = float64(memInfo.RSS) / bytesPerMB
		}
	}
	if s.dataDir != "" {
		status.DiskUsedMB = float64(dirSize(s.dataDir)) / bytesPerMB
	}

	if s.pool != nil {
		pm := s.pool.GetMetrics()
		status.Workers.PoolWorkers = pm.MaxWorkers
		status.Workers.PoolActive = pm.ActiveCount
		status.Workers.PoolQueued = pm.QueuedCount
	}
	if s.writeQueues != nil {
		status.Workers.WriteQueues = s.writeQueues.GetMetrics().ActiveQueues
	}
	return status, nil
}

// count 执行单个统计查询，失败记日志并回退为 0
func (s *statusService) count(ctx context.Context, name string, fn func(ctx context.Context) (int64, error)) int64 {
	n, err := fn(ctx)
	if err != nil {
		global.Logger.Warn("status count failed",
			zap.String("counter", name),
			zap.Error(err),
		)
		return 0
	}
	return n
}

// dirSize 统计目录下全部文件字节数，遍历出错的子项直接跳过
func dirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, ierr := d.Info(); ierr == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

var _ StatusService = (*statusService)(nil)
