package domain

import "strings"

// RelationshipType 连接关系类型，封闭枚举
type RelationshipType string

const (
	RelationRelatedTo   RelationshipType = "related-to"
	RelationDependsOn   RelationshipType = "depends-on"
	RelationPartOf      RelationshipType = "part-of"
	RelationSupports    RelationshipType = "supports"
	RelationContradicts RelationshipType = "contradicts"
	RelationReferences  RelationshipType = "references"
)

// DefaultRelationshipType 未识别类型的归一化结果
const DefaultRelationshipType = RelationRelatedTo

// RelationshipMeta 关系类型的展示元数据
type RelationshipMeta struct {
	Type        RelationshipType `json:"type"`
	Label       string           `json:"label"`
	Color       string           `json:"color"`
	Description string           `json:"description"`
}

// relationshipMetas 关系类型参考数据，画布侧用于连线着色
var relationshipMetas = map[RelationshipType]RelationshipMeta{
	RelationRelatedTo:   {Type: RelationRelatedTo, Label: "Related to", Color: "#64748b", Description: "General association between two notes"},
	RelationDependsOn:   {Type: RelationDependsOn, Label: "Depends on", Color: "#f59e0b", Description: "Source builds on the target"},
	RelationPartOf:      {Type: RelationPartOf, Label: "Part of", Color: "#8b5cf6", Description: "Source is a component of the target"},
	RelationSupports:    {Type: RelationSupports, Label: "Supports", Color: "#22c55e", Description: "Source provides evidence for the target"},
	RelationContradicts: {Type: RelationContradicts, Label: "Contradicts", Color: "#ef4444", Description: "Source conflicts with the target"},
	RelationReferences:  {Type: RelationReferences, Label: "References", Color: "#3b82f6", Description: "Source cites or mentions the target"},
}

// AllRelationshipTypes 按固定顺序返回全部关系类型
func AllRelationshipTypes() []RelationshipMeta {
	ordered := []RelationshipType{
		RelationRelatedTo,
		RelationDependsOn,
		RelationPartOf,
		RelationSupports,
		RelationContradicts,
		RelationReferences,
	}
	metas := make([]RelationshipMeta, 0, len(ordered))
	for _, t := range ordered {
		metas = append(metas, relationshipMetas[t])
	}
	return metas
}

// Meta 返回关系类型的展示元数据
func (t RelationshipType) Meta() RelationshipMeta {
	if m, ok := relationshipMetas[t]; ok {
		return m
	}
	return relationshipMetas[DefaultRelationshipType]
}

// IsValid 判断是否为枚举成员
func (t RelationshipType) IsValid() bool {
	_, ok := relationshipMetas[t]
	return ok
}

// NormalizeRelationshipType 归一化外部输入的关系类型
// 兼容大小写、空格和下划线写法，未识别时回落到 fallback
// AI 返回的类型字符串全部经过这里再入库
func NormalizeRelationshipType(raw string, fallback RelationshipType) RelationshipType {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")

	t := RelationshipType(s)
	if t.IsValid() {
		return t
	}

	// 常见同义写法
	switch s {
	case "related", "relates-to", "relation":
		return RelationRelatedTo
	case "depends", "dependency", "requires":
		return RelationDependsOn
	case "partof", "belongs-to", "contains":
		return RelationPartOf
	case "support", "supported-by", "evidence":
		return RelationSupports
	case "contradict", "conflicts-with", "opposes":
		return RelationContradicts
	case "reference", "refers-to", "cites", "mentions":
		return RelationReferences
	}

	if fallback.IsValid() {
		return fallback
	}
	return DefaultRelationshipType
}
