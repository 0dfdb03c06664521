package main

import (
	"os"
	"time"

	"github.com/tradeboard/internal/config"
	"github.com/tradeboard/internal/constants"
	"github.com/tradeboard/internal/logger"
	"github.com/tradeboard/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 初始数据：一个管理员会员和三个板块的示例帖子。重复执行不会重复写入。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	now := time.Now().UnixMilli()

	// 管理员账号
	adminUsername := os.Getenv("TB_SEED_ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}
	adminPassword := os.Getenv("TB_SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		stdLog.Printf("TB_SEED_ADMIN_PASSWORD not set, skip admin member")
	} else {
		var existing models.Member
		if err := models.DB.Where("username = ?", adminUsername).First(&existing).Error; err != nil {
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if hashErr != nil {
				stdLog.Fatalf("Failed to hash admin password: %v", hashErr)
			}
			admin := models.Member{
				ID:           uuid.NewString(),
				Username:     adminUsername,
				PasswordHash: string(hash),
				Status:       constants.MemberStatusActive,
				IsAdmin:      true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := models.DB.Create(&admin).Error; err != nil {
				stdLog.Printf("Failed to create admin member: %v", err)
			} else {
				stdLog.Printf("Created admin member: %s", adminUsername)
			}
		} else {
			stdLog.Printf("Admin member already exists: %s", adminUsername)
		}
	}

	// 各板块示例帖子
	posts := []models.Post{
		{
			BoardType: constants.BoardTypeFree,
			Title:     "자유게시판 오픈",
			Content:   "자유롭게 글을 남겨주세요.",
			Author:    "관리자",
			IsAdmin:   true,
		},
		{
			BoardType: constants.BoardTypeTrade,
			Title:     "골드 거래 안내",
			Content:   "거래 신청 전 공지를 확인해주세요.",
			Author:    "관리자",
			IsAdmin:   true,
		},
		{
			BoardType: constants.BoardTypeAdminShop,
			Title:     "운영자 상점",
			Content:   "시세표는 매일 갱신됩니다.",
			Author:    "관리자",
			ItemName:  "골드",
			Price:     "시세 문의",
			IsAdmin:   true,
		},
	}

	for _, post := range posts {
		var existing models.Post
		err := models.DB.
			Where("board_type = ? AND title = ?", post.BoardType, post.Title).
			First(&existing).Error
		if err == nil {
			stdLog.Printf("Post already exists: [%s] %s", post.BoardType, post.Title)
			continue
		}
		post.ID = uuid.NewString()
		post.CreatedAt = now
		post.UpdatedAt = now
		if err := models.DB.Create(&post).Error; err != nil {
			stdLog.Printf("Failed to create post %s: %v", post.Title, err)
		} else {
			stdLog.Printf("Created post: [%s] %s", post.BoardType, post.Title)
		}
	}
}
