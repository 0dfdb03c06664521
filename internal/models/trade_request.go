package models

// TradeRequest 交易申请表
// post_id 仅为弱引用，不做外键约束，读取方需容忍悬空引用。
type TradeRequest struct {
	ID         string `gorm:"primaryKey" json:"id"`
	PostID     string `gorm:"index" json:"post_id"`
	PostTitle  string `json:"post_title"` // 下单时的帖子标题快照
	Name       string `json:"name"`
	IDNumber   string `gorm:"column:id_number" json:"id_number"` // 身份证号，敏感字段
	Phone      string `json:"phone"`
	GameID     string `gorm:"column:game_id" json:"game_id"`
	SellAmount int64  `gorm:"default:0" json:"sell_amount"`
	BuyAmount  int64  `gorm:"default:0" json:"buy_amount"`
	Status     string `gorm:"default:pending;index" json:"status"` // pending / processing / completed / cancelled
	CustomDate string `gorm:"index" json:"custom_date"`            // 展示日期覆写，优先于 created_at
	CreatedAt  int64  `gorm:"not null;index" json:"created_at"`
	UpdatedAt  int64  `gorm:"not null" json:"updated_at"`
	DeletedAt  *int64 `json:"deleted_at"`
}

// TableName 指定表名
func (TradeRequest) TableName() string {
	return "trade_requests"
}
