package model

import "github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

const TableNameSchemaVersion = "schema_version"

// SchemaVersion 记录已执行的数据迁移
type SchemaVersion struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	Version   string     `gorm:"column:version;not null;uniqueIndex:idx_schema_version" json:"version"`
	AppliedAt timex.Time `gorm:"column:applied_at;type:datetime;default:NULL" json:"appliedAt"`
}

// TableName SchemaVersion's table name
func (*SchemaVersion) TableName() string {
	return TableNameSchemaVersion
}
