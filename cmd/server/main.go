package main

import (
	"fmt"
	"net/http"

	"github.com/SlpAus/good-night-backend/api"
	"github.com/SlpAus/good-night-backend/internal/platform/config"
	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/internal/platform/health"
	"github.com/SlpAus/good-night-backend/internal/platform/shutdown"
	"github.com/SlpAus/good-night-backend/internal/platform/startup"
	"github.com/SlpAus/good-night-backend/pkg/lifecycle"
)

func main() {
	// 1. 加载配置并建立外部连接
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 2. 执行应用初始化流程（各模块的表结构迁移）
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 3. 创建生命周期管理器并启动后台的Redis健康检查器
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(fmt.Sprintf("无法注册健康检查器: %v", err))
	}
	go health.StartRedisHealthCheck(healthHandle)

	// 4. 构建路由并启动HTTP服务器
	router := api.NewRouter(cfg)
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 5. 阻塞等待停机信号，执行两阶段优雅停机
	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
