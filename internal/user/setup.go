package user

import (
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
)

// migrateDB 负责自动迁移users表结构。
func migrateDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移users表: %w", err)
	}
	fmt.Println("users数据库表迁移成功。")
	return nil
}

// PrimeDB 是user模块的初始化总入口。
func PrimeDB() error {
	return migrateDB()
}
