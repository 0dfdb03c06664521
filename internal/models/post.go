package models

// Post 帖子表（自由板/交易板/管理员商店共用）
type Post struct {
	ID        string `gorm:"primaryKey" json:"id"`            // UUID
	BoardType string `gorm:"index" json:"board_type"` // free / trade / admin_shop
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	ItemName  string `json:"item_name"`                  // 交易物品名
	Price     string `json:"price"`                      // 展示用价格文本
	Views     int64  `gorm:"default:0" json:"views"`     // 浏览计数（由客户端 PATCH 递增）
	IsAdmin   bool   `gorm:"default:false" json:"is_admin"`
	CreatedAt int64  `gorm:"not null;index" json:"created_at"` // 毫秒时间戳
	UpdatedAt int64  `gorm:"not null" json:"updated_at"`
	DeletedAt *int64 `json:"deleted_at"` // 软删除标记，空表示存活
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
