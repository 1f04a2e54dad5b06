// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrateAll 迁移全部表，服务启动时调用
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		Note{},
		Link{},
		Edge{},
		NoteHistory{},
		BackupConfig{},
		BackupHistory{},
		SchemaVersion{},
	)
}
