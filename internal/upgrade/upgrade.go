// Package upgrade 提供跨版本的数据迁移
package upgrade

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/model"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// referenceVersionFile 记录上一次运行版本的文件
const referenceVersionFile = "config/lastVersion"

// baseVersion 迁移机制引入前的最后版本
const baseVersion = "v0.9.0"

// Migration 定义升级接口
type Migration interface {
	Version() string
	Description() string
	Up(db *gorm.DB, ctx context.Context) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db             *gorm.DB
	logger         *zap.Logger
	runningVersion string
	dbPath         string
	dbType         string
	migrations     []Migration
}

// NewMigrationManager 创建升级管理器
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, runningVersion, dbPath, dbType string) *MigrationManager {
	return &MigrationManager{
		db:             db,
		logger:         logger,
		runningVersion: runningVersion,
		dbPath:         dbPath,
		dbType:         dbType,
		migrations: []Migration{
			// 在这里注册所有的升级脚本
			&EdgeBackfillMigrate{},
			&RelationNormalizeMigrate{},
		},
	}
}

// Run 执行升级
func (m *MigrationManager) Run(ctx context.Context) error {
	m.logger.Info("Migration started",
		zap.String("dbType", m.dbType),
		zap.String("dbPath", m.dbPath))

	if err := model.AutoMigrateAll(m.db); err != nil {
		return fmt.Errorf("failed to auto migrate tables: %w", err)
	}

	// 获取已应用的数据库版本
	appliedVersions, err := m.getAppliedVersions()
	if err != nil {
		return fmt.Errorf("failed to get applied versions: %w", err)
	}

	lastVersion := m.getReferenceVersion()
	// semver 库要求 "v" 前缀
	if !strings.HasPrefix(lastVersion, "v") {
		lastVersion = "v" + lastVersion
	}

	if !semver.IsValid(lastVersion) {
		m.logger.Warn("reference version is not a valid semver, using "+baseVersion, zap.String("lastVersion", lastVersion))
		lastVersion = baseVersion
	}

	m.logger.Info("LastVersion", zap.String("lastVersion", lastVersion))

	// 当前运行版本不比上一次运行的版本新时跳过检查,
	// 避免每次重启都做不必要的数据库查询
	runningVersion := m.runningVersion
	if !strings.HasPrefix(runningVersion, "v") {
		runningVersion = "v" + runningVersion
	}
	if semver.Compare(runningVersion, lastVersion) <= 0 {
		m.logger.Info("skipping upgrade", zap.String("runningVersion", runningVersion), zap.String("lastVersion", lastVersion))
		return nil
	}

	// 执行所有未执行的升级
	executed := 0
	for _, migration := range m.migrations {
		scriptVersion := migration.Version()

		currentScriptVersion := scriptVersion
		if !strings.HasPrefix(currentScriptVersion, "v") {
			currentScriptVersion = "v" + currentScriptVersion
		}

		// migration.Version <= lastVersion 的脚本在上一次运行前就已涵盖
		if semver.IsValid(currentScriptVersion) && semver.Compare(currentScriptVersion, lastVersion) <= 0 {
			m.logger.Info("skip migration <= lastVersion",
				zap.String("scriptVersion", scriptVersion),
				zap.String("lastVersion", lastVersion))
			continue
		}

		// 检查是否已应用
		if appliedVersions[scriptVersion] {
			continue
		}

		m.logger.Info("applying migration",
			zap.String("scriptVersion", migration.Version()),
			zap.String("desc", migration.Description()))

		// 在事务中执行升级
		if err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx, ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			// 记录版本
			record := &model.SchemaVersion{
				Version:   migration.Version(),
				AppliedAt: timex.Now(),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record version: %w", err)
			}

			return nil
		}); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version(), err)
		}

		m.logger.Info("migration applied successfully", zap.String("scriptVersion", migration.Version()))
		executed++
	}

	if executed == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", executed))
	}

	// 无论是否执行了升级,把当前运行版本写入参考文件
	// 作为下一次运行的基准
	if err := m.saveReferenceVersion(m.runningVersion); err != nil {
		m.logger.Error("save lastVersion failed", zap.Error(err))
		// 记录错误但不阻断启动
	} else {
		m.logger.Info("save lastVersion success", zap.String("ver", m.runningVersion))
	}

	return nil
}

// getAppliedVersions 获取已应用的数据库版本
func (m *MigrationManager) getAppliedVersions() (map[string]bool, error) {
	var versions []model.SchemaVersion
	err := m.db.Find(&versions).Error
	if err != nil {
		return nil, err
	}

	applied := make(map[string]bool)
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}

// getReferenceVersion 获取参考版本号
// 文件不存在或为空时返回 baseVersion
func (m *MigrationManager) getReferenceVersion() string {
	content, err := os.ReadFile(referenceVersionFile)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("read "+referenceVersionFile+" failed", zap.Error(err))
		} else {
			m.logger.Info(referenceVersionFile + " not found, default " + baseVersion)
		}
		return baseVersion
	}

	ver := strings.TrimSpace(string(content))

	if ver == "" {
		m.logger.Info(referenceVersionFile + " empty, default " + baseVersion)
		return baseVersion
	}
	return ver
}

// saveReferenceVersion 保存当前版本号
func (m *MigrationManager) saveReferenceVersion(version string) error {
	return os.WriteFile(referenceVersionFile, []byte(version), 0644)
}

// Execute 执行升级(便捷方法)
func Execute(db *gorm.DB, logger *zap.Logger, runningVersion, dbPath, dbType string) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	if logger == nil {
		return fmt.Errorf("logger not initialized")
	}

	ctx := context.Background()

	manager := NewMigrationManager(db, logger, runningVersion, dbPath, dbType)
	return manager.Run(ctx)
}
