package models

// Comment 帖子评论表
type Comment struct {
	ID        string `gorm:"primaryKey" json:"id"`
	PostID    string `gorm:"index" json:"post_id"` // 弱引用，无外键
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt int64  `gorm:"not null;index" json:"created_at"`
	UpdatedAt int64  `gorm:"not null" json:"updated_at"`
	DeletedAt *int64 `json:"deleted_at"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
