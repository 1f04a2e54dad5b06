package code

// 通用状态码
var (
	Success = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
	Failed  = NewError(203, lang{en: "Failed", zh_cn: "失败"})
)

// 服务级错误码
var (
	ErrorServerInternal  = NewError(10000000, lang{en: "Server internal error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10000001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(10000002, lang{en: "API not found", zh_cn: "找不到对应接口"})
	ErrorTooManyRequests = NewError(10000003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery         = NewError(10000004, lang{en: "Database query error", zh_cn: "数据库查询错误"})
)

// 认证相关错误码
var (
	ErrorInvalidAuthToken     = NewError(10001001, lang{en: "Invalid auth token", zh_cn: "认证口令无效"})
	ErrorNotUserAuthToken     = NewError(10001002, lang{en: "Auth token is missing", zh_cn: "缺少认证口令"})
	ErrorInvalidUserAuthToken = NewError(10001003, lang{en: "Auth token is invalid or expired", zh_cn: "认证口令无效或已过期"})
	ErrorUserLoginFailed      = NewError(10001004, lang{en: "Password does not match", zh_cn: "密码不正确"})
	ErrorTokenGenerate        = NewError(10001005, lang{en: "Failed to generate auth token", zh_cn: "生成认证口令失败"})
)

// 笔记相关错误码
var (
	ErrorNoteNotFound     = NewError(10003001, lang{en: "Note not found", zh_cn: "笔记不存在"})
	ErrorNoteTitleEmpty   = NewError(10003002, lang{en: "Note title cannot be empty", zh_cn: "笔记标题不能为空"})
	ErrorNoteTitleExist   = NewError(10003003, lang{en: "A note with this title already exists", zh_cn: "同名笔记已存在"})
	ErrorNoteCreateFailed = NewError(10003004, lang{en: "Failed to create note", zh_cn: "创建笔记失败"})
	ErrorNoteModifyFailed = NewError(10003005, lang{en: "Failed to update note", zh_cn: "更新笔记失败"})
	ErrorNoteDeleteFailed = NewError(10003006, lang{en: "Failed to delete note", zh_cn: "删除笔记失败"})
	ErrorNoteListFailed   = NewError(10003007, lang{en: "Failed to list notes", zh_cn: "获取笔记列表失败"})
)

// 图谱相关错误码
var (
	ErrorLinkSyncFailed   = NewError(10004001, lang{en: "Failed to synchronize note links", zh_cn: "笔记链接同步失败"})
	ErrorEdgeNotFound     = NewError(10004002, lang{en: "Edge not found", zh_cn: "连接不存在"})
	ErrorEdgeCreateFailed = NewError(10004003, lang{en: "Failed to create edge", zh_cn: "创建连接失败"})
	ErrorEdgeModifyFailed = NewError(10004004, lang{en: "Failed to update edge", zh_cn: "更新连接失败"})
	ErrorEdgeDeleteFailed = NewError(10004005, lang{en: "Failed to delete edge", zh_cn: "删除连接失败"})
)

// AI 建议相关错误码
var (
	ErrorAIDisabled            = NewError(10005001, lang{en: "AI suggestions are not configured", zh_cn: "AI 建议功能未配置"})
	ErrorAIService             = NewError(10005002, lang{en: "AI service request failed", zh_cn: "AI 服务请求失败"})
	ErrorSuggestionInFlight    = NewError(10005003, lang{en: "A suggestion request is already running for this note", zh_cn: "该笔记已有建议请求在执行中"})
	ErrorSuggestionRateLimited = NewError(10005004, lang{en: "Suggestion requests are too frequent", zh_cn: "建议请求过于频繁"})
	ErrorAutoLinkFailed        = NewError(10005005, lang{en: "Auto-link failed", zh_cn: "自动关联失败"})
)

// 历史版本相关错误码
var (
	ErrorHistoryNotFound = NewError(10006001, lang{en: "Note history not found", zh_cn: "笔记历史版本不存在"})
)

// 备份相关错误码
var (
	ErrorBackupConfigNotFound  = NewError(10007001, lang{en: "Backup config not found", zh_cn: "备份配置不存在"})
	ErrorBackupConfigDisabled  = NewError(10007002, lang{en: "Backup config is disabled", zh_cn: "备份配置已禁用"})
	ErrorBackupExecuteFailed   = NewError(10007003, lang{en: "Backup execution failed", zh_cn: "备份执行失败"})
	ErrorInvalidStorageType    = NewError(10007004, lang{en: "Invalid storage type", zh_cn: "存储类型无效"})
	ErrorBackupScheduleInvalid = NewError(10007005, lang{en: "Backup schedule expression is invalid", zh_cn: "备份调度表达式无效"})
)
