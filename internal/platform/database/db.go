package database

import (
	"fmt"
	"log"
	"os"

	"github.com/SlpAus/good-night-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是全局的GORM实例，供项目其他部分使用。
var DB *gorm.DB

// InitDB 根据配置初始化数据库连接。
// 生产环境使用postgres，本地开发和测试使用sqlite。
func InitDB(cfg config.DatabaseConfig) {
	var err error

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent,
			Colorful:      true,
		},
	)

	gormCfg := &gorm.Config{
		Logger:         newLogger,
		TranslateError: true, // 把驱动错误翻译为gorm.ErrDuplicatedKey等统一错误
	}

	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	default:
		DB, err = gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	}

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}

// CloseDB 关闭GORM底层的连接池，在停机流程的最后调用。
func CloseDB() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		fmt.Printf("获取底层数据库连接失败: %v\n", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		fmt.Printf("关闭数据库连接失败: %v\n", err)
	}
}

// PingDB 检查数据库连接是否可用，供 /up 探针使用。
func PingDB() error {
	if DB == nil {
		return fmt.Errorf("数据库尚未初始化")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
