package upgrade

import (
	"context"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/model"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EdgeBackfillMigrate 为存量已解析链接补建 references 连接
// 连接表是后来引入的,旧库中只有链接行
type EdgeBackfillMigrate struct{}

// Version 返回版本号
func (m *EdgeBackfillMigrate) Version() string {
	return "0.9.1"
}

// Description 返回描述
func (m *EdgeBackfillMigrate) Description() string {
	return "Backfill references edges for resolved links created before the edge table existed"
}

// Up 执行升级
func (m *EdgeBackfillMigrate) Up(db *gorm.DB, ctx context.Context) error {
	var links []model.Link
	if err := db.WithContext(ctx).Where("target_note_id > 0").Find(&links).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	var edges []model.Edge
	if err := db.WithContext(ctx).Find(&edges).Error; err != nil {
		return err
	}

	// 双向去重:任一方向已有连接就不再补
	type pair struct{ source, target int64 }
	seen := make(map[pair]bool, len(edges)*2)
	for _, e := range edges {
		seen[pair{e.SourceNoteID, e.TargetNoteID}] = true
		seen[pair{e.TargetNoteID, e.SourceNoteID}] = true
	}

	created := 0
	for _, link := range links {
		if link.SourceNoteID == link.TargetNoteID {
			continue
		}
		p := pair{link.SourceNoteID, link.TargetNoteID}
		if seen[p] {
			continue
		}

		edge := &model.Edge{
			SourceNoteID:     link.SourceNoteID,
			TargetNoteID:     link.TargetNoteID,
			RelationshipType: string(domain.RelationReferences),
			IsManual:         false,
			CreatedAt:        timex.Now(),
		}
		if err := db.WithContext(ctx).Create(edge).Error; err != nil {
			return err
		}
		seen[p] = true
		seen[pair{p.target, p.source}] = true
		created++
	}

	if created > 0 && global.Logger != nil {
		global.Logger.Info("EdgeBackfillMigrate: edges created", zap.Int("created", created))
	}
	return nil
}
