package models

// Member 会员表
type Member struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex" json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
	Status       string `gorm:"default:active;index" json:"status"` // active / pending
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	CreatedAt    int64  `gorm:"not null" json:"created_at"`
	UpdatedAt    int64  `gorm:"not null" json:"updated_at"`
	DeletedAt    *int64 `json:"deleted_at"`
}

// TableName 指定表名
func (Member) TableName() string {
	return "members"
}
