package upgrade

import (
	"context"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RelationNormalizeMigrate 归一化存量连接的 relationship_type
// 早期客户端写入过大小写混合与下划线写法
type RelationNormalizeMigrate struct{}

// Version 返回版本号
func (m *RelationNormalizeMigrate) Version() string {
	return "0.9.2"
}

// Description 返回描述
func (m *RelationNormalizeMigrate) Description() string {
	return "Normalize edge relationship_type values to the canonical enum"
}

// Up 执行升级
func (m *RelationNormalizeMigrate) Up(db *gorm.DB, ctx context.Context) error {
	var edges []model.Edge
	if err := db.WithContext(ctx).Find(&edges).Error; err != nil {
		return err
	}

	updated := 0
	for _, e := range edges {
		normalized := string(domain.NormalizeRelationshipType(e.RelationshipType, domain.DefaultRelationshipType))
		if normalized == e.RelationshipType {
			continue
		}
		if err := db.WithContext(ctx).Model(&model.Edge{}).
			Where("id = ?", e.ID).
			Update("relationship_type", normalized).Error; err != nil {
			return err
		}
		updated++
	}

	// 链接行缺失关系类型时补默认值
	if err := db.WithContext(ctx).Model(&model.Link{}).
		Where("relationship_type = ? OR relationship_type IS NULL", "").
		Update("relationship_type", string(domain.RelationReferences)).Error; err != nil {
		return err
	}

	if updated > 0 && global.Logger != nil {
		global.Logger.Info("RelationNormalizeMigrate: edges normalized", zap.Int("updated", updated))
	}
	return nil
}
