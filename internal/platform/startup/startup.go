package startup

import (
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/follow"
	"github.com/SlpAus/good-night-backend/internal/sleep"
	"github.com/SlpAus/good-night-backend/internal/user"
)

// InitializeApplication 是应用启动时执行的总入口。
// 按依赖顺序完成各模块的表结构迁移: follows和sleep_records都有指向users的外键。
func InitializeApplication() error {
	fmt.Println("开始应用初始化...")

	if err := user.PrimeDB(); err != nil {
		return err
	}
	if err := follow.PrimeDB(); err != nil {
		return err
	}
	if err := sleep.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
