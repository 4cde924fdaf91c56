package sleep

import (
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
)

// migrateDB 负责自动迁移sleep_records表结构。
// 除常规索引外，还创建一个部分唯一索引，保证每个用户至多一条进行中的记录。
// sqlite和postgres都支持带WHERE条件的索引，GORM的标签语法不支持，所以用原生SQL。
func migrateDB() error {
	if err := database.DB.AutoMigrate(&SleepRecord{}); err != nil {
		return fmt.Errorf("无法迁移sleep_records表: %w", err)
	}

	err := database.DB.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_sleep_records_one_open " +
			"ON sleep_records(user_id) WHERE clock_out_at IS NULL",
	).Error
	if err != nil {
		return fmt.Errorf("无法创建进行中记录的部分唯一索引: %w", err)
	}

	fmt.Println("sleep_records数据库表迁移成功。")
	return nil
}

// PrimeDB 是sleep模块的初始化总入口。
func PrimeDB() error {
	return migrateDB()
}
