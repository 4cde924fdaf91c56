package follow

import (
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
)

// migrateDB 负责自动迁移follows表结构，
// 包括(follower_id, following_id)复合唯一索引和指向users的外键。
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Follow{}); err != nil {
		return fmt.Errorf("无法迁移follows表: %w", err)
	}
	fmt.Println("follows数据库表迁移成功。")
	return nil
}

// PrimeDB 是follow模块的初始化总入口。
func PrimeDB() error {
	return migrateDB()
}
