package health

import (
	"context"
	"time"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// PerformCheck 执行一次Redis健康检查并更新全局状态。
// 响应缓存里只有可丢弃的数据，Redis重启后无需任何重建，
// 状态恢复为可用后缓存会随读请求自然回填。
func PerformCheck() {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()

	err := database.RDB.Ping(ctx).Err()
	database.UpdateRedisStatus(err == nil)
}

// StartRedisHealthCheck 启动后台循环，定期、阻塞式地执行健康检查。
// 通过生命周期句柄响应停机信号。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	for {
		if err := handle.Sleep(checkInterval); err != nil {
			return
		}
		PerformCheck()
	}
}
