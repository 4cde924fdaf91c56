package lifecycle

import (
	"context"
	"time"
)

// Handle 是分发给单个后台服务的生命周期控制器。
type Handle struct {
	ctx context.Context
	// Close 通知Manager本服务已经退出。
	// 应该在服务Goroutine的入口处通过defer调用。
	Close func()
}

// Ctx 返回句柄内部的context。
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回一个channel，停机信号广播时该channel会被关闭。
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在Done()关闭后返回取消原因。
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 暂停指定时长；如果期间收到停机信号则提前返回错误。
// 后台循环中的休眠都应该使用它，而不是time.Sleep。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}
