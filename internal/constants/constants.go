package constants

// 表名
const (
	TablePosts         = "posts"
	TableMembers       = "members"
	TableTradeRequests = "trade_requests"
	TableComments      = "comments"
)

// 板块类型
const (
	BoardTypeFree      = "free"
	BoardTypeTrade     = "trade"
	BoardTypeAdminShop = "admin_shop"
)

// 会员状态
const (
	MemberStatusActive  = "active"
	MemberStatusPending = "pending"
)

// 交易申请状态
const (
	TradeStatusPending    = "pending"
	TradeStatusProcessing = "processing"
	TradeStatusCompleted  = "completed"
	TradeStatusCancelled  = "cancelled"
)

// 交易状态的韩文写法（旧版管理端会把本地化文本直接写入 status 字段）
const (
	TradeStatusPendingKo    = "대기중"
	TradeStatusProcessingKo = "거래진행중"
	TradeStatusCompletedKo  = "거래완료"
	TradeStatusCancelledKo  = "취소"
)

// 队列与任务
const (
	QueueDefault    = "default"
	TaskPurgeRecord = "retention:purge_record"
)
