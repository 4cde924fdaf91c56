package cache

import (
	"fmt"
	"time"

	"github.com/SlpAus/good-night-backend/internal/platform/config"
	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// 响应缓存。键的形态是 "<实体族>/<操作>/<参数>"，
// 例如 "users/index/page=1&per_page=20"，写路径按前缀整体失效。
// 缓存是纯旁路: 任何Redis错误都只会导致本次请求落库，不会让请求失败。

// keyPrefix 把本应用的键与同一Redis实例上的其他键隔离。
const keyPrefix = "goodnight:cache:"

// Active 报告缓存当前是否应该被使用。
// 配置关闭或健康检查器标记Redis不可用时返回false。
func Active() bool {
	if config.Cfg == nil || !config.Cfg.Cache.Enabled {
		return false
	}
	return database.IsRedisHealthy()
}

// TTL 返回配置的缓存过期时间。
func TTL() time.Duration {
	if config.Cfg == nil {
		return 10 * time.Minute
	}
	return config.Cfg.Cache.TTL()
}

// Read 查找一个缓存条目。未命中或Redis出错时返回(nil, false)。
func Read(key string) ([]byte, bool) {
	if !Active() {
		return nil, false
	}
	val, err := database.RDB.Get(database.Ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		fmt.Printf("缓存读取失败 (key=%s): %v\n", key, err)
		return nil, false
	}
	return val, true
}

// Write 写入一个缓存条目并设置过期时间。失败只告警。
func Write(key string, value []byte, ttl time.Duration) {
	if !Active() {
		return
	}
	if err := database.RDB.Set(database.Ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		fmt.Printf("缓存写入失败 (key=%s): %v\n", key, err)
	}
}

// DeleteMatching 删除所有以prefix开头的缓存条目。
// 写路径在任何变更后调用它使相关实体族的读缓存整体失效。
func DeleteMatching(prefix string) {
	if !Active() {
		return
	}

	// SCAN增量遍历，避免在大键空间上执行阻塞的KEYS
	var cursor uint64
	pattern := keyPrefix + prefix + "*"
	for {
		keys, next, err := database.RDB.Scan(database.Ctx, cursor, pattern, 100).Result()
		if err != nil {
			fmt.Printf("缓存失效扫描失败 (prefix=%s): %v\n", prefix, err)
			return
		}
		if len(keys) > 0 {
			if err := database.RDB.Del(database.Ctx, keys...).Err(); err != nil {
				fmt.Printf("缓存删除失败 (prefix=%s): %v\n", prefix, err)
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
