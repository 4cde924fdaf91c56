package database

import (
	"context"
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是全局的Redis客户端实例，只承担响应缓存，不存业务数据。
var RDB *redis.Client

// Ctx 是用于Redis操作的全局上下文。
var Ctx = context.Background()

// InitRedis 初始化与Redis的连接。
// 缓存是可降级的外部依赖，连接失败时只告警，不阻止启动。
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		fmt.Printf("警告: 无法连接到Redis (%v)，响应缓存将不可用。\n", err)
		UpdateRedisStatus(false)
		return
	}

	fmt.Println("Redis 连接成功！")
	UpdateRedisStatus(true)
}

// CloseRedis 关闭Redis客户端，在停机流程的最后调用。
func CloseRedis() {
	if RDB == nil {
		return
	}
	if err := RDB.Close(); err != nil {
		fmt.Printf("关闭Redis连接失败: %v\n", err)
	}
}
