// Package dao implements the data access layer
package dao

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/model"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/fileurl"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// DatabaseConfig 数据库配置，由应用层装配后注入
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	Replicas        []string
	RunMode         string
}

// Dao 数据访问对象，持有数据库连接与写队列
type Dao struct {
	db            *gorm.DB
	ctx           context.Context
	config        *DatabaseConfig
	logger        *zap.Logger
	writeQueueMgr *writequeue.Manager
}

// Option 配置选项函数类型
type Option func(*Dao)

// WithConfig 注入数据库配置
func WithConfig(c *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = c
	}
}

// WithLogger 注入日志器
func WithLogger(l *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = l
	}
}

// WithWriteQueueManager 注入写队列管理器
func WithWriteQueueManager(m *writequeue.Manager) Option {
	return func(d *Dao) {
		d.writeQueueMgr = m
	}
}

// New 创建 Dao 实例并按需执行表迁移
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{
		db:     db,
		ctx:    ctx,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.config == nil || d.config.AutoMigrate {
		if err := model.AutoMigrateAll(db); err != nil {
			d.logger.Error("Database auto migrate failed", zap.Error(err))
		}
	}

	return d
}

// DB 返回底层 GORM 连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// ExecuteWrite 通过写队列串行化指定笔记的写操作
// 未配置写队列时直接执行
func (d *Dao) ExecuteWrite(ctx context.Context, noteID int64, fn func() error) error {
	if d.writeQueueMgr == nil {
		return fn()
	}
	return d.writeQueueMgr.Execute(ctx, noteID, fn)
}

// NewDBEngine 创建数据库引擎
// sqlite 自动建目录并附加 busy_timeout/WAL pragma；mysql/postgres 支持只读副本
func NewDBEngine(c *DatabaseConfig) (*gorm.DB, error) {
	dialector := newDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	if c.RunMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(c.ConnMaxIdleTime) * time.Second)

	if len(c.Replicas) > 0 && c.Type != "sqlite" {
		var replicas []gorm.Dialector
		for _, host := range c.Replicas {
			rc := *c
			rc.Host = host
			if rd := newDialector(&rc); rd != nil {
				replicas = append(replicas, rd)
			}
		}
		if len(replicas) > 0 {
			if err := db.Use(dbresolver.Register(dbresolver.Config{Replicas: replicas})); err != nil {
				return nil, err
			}
		}
	}

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	return db, nil
}

func newDialector(c *DatabaseConfig) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	case "sqlite":
		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		// 单文件多连接场景下避免 SQLITE_BUSY
		return sqlite.Open(c.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	}
	return nil
}
