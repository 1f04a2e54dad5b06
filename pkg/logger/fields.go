package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldTargetID 目标笔记 ID 字段
	FieldTargetID = "targetId"

	// FieldTitle 笔记标题字段
	FieldTitle = "title"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldSessionID 会话 ID 字段
	FieldSessionID = "sessionId"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldBucket 存储桶字段
	FieldBucket = "bucket"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"
)
