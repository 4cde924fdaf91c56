package api

import (
	"github.com/SlpAus/good-night-backend/internal/follow"
	"github.com/SlpAus/good-night-backend/internal/sleep"
	"github.com/SlpAus/good-night-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由。
func SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// 用户相关的路由组 /api/v1/users
		users := v1.Group("/users")
		{
			users.GET("", user.Index)
			users.POST("", user.CreateHandler)
			users.GET("/:id", user.Show)
			users.PATCH("/:id", user.UpdateHandler)
			users.PUT("/:id", user.UpdateHandler)
			users.DELETE("/:id", user.DestroyHandler)

			// 用户层面的关注操作与关注列表
			users.POST("/:id/follow", follow.FollowUserHandler)
			users.DELETE("/:id/unfollow", follow.UnfollowUserHandler)
			users.GET("/:id/followers", user.Followers)
			users.GET("/:id/following", user.Following)

			// 嵌套的睡眠记录路由
			records := users.Group("/:id/sleep_records")
			{
				records.GET("", sleep.Index)
				records.POST("/clock_in", sleep.ClockInHandler)
				records.POST("/clock_out", sleep.ClockOutHandler)
				records.GET("/current", sleep.Current)
				records.GET("/friends", sleep.Friends)
				records.GET("/:record_id", sleep.Show)
				records.DELETE("/:record_id", sleep.DestroyHandler)
			}
		}

		// 独立的关注边路由 /api/v1/follows
		follows := v1.Group("/follows")
		{
			follows.GET("", follow.Index)
			follows.POST("", follow.CreateHandler)
			follows.GET("/:id", follow.Show)
			follows.DELETE("/:id", follow.DestroyHandler)
		}
	}
}
