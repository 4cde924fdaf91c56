package cache

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServeCached 尝试用缓存条目直接响应本次请求，命中时返回true。
func ServeCached(c *gin.Context, key string) bool {
	body, ok := Read(key)
	if !ok {
		return false
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	return true
}

// ServeAndCache 序列化payload，写入缓存并作为本次请求的响应。
func ServeAndCache(c *gin.Context, key string, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize response"})
		return
	}
	Write(key, body, TTL())
	c.Data(status, "application/json; charset=utf-8", body)
}
