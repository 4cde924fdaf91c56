package sleep

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/good-night-backend/internal/platform/cache"
	"github.com/SlpAus/good-night-backend/internal/user"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"github.com/SlpAus/good-night-backend/pkg/result"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

// Response 是睡眠记录的序列化形态。
// duration_in_hours在会话未结束时为null。
type Response struct {
	ID              string               `json:"id"`
	User            user.CompactResponse `json:"user"`
	ClockInAt       time.Time            `json:"clock_in_at"`
	ClockOutAt      *time.Time           `json:"clock_out_at"`
	DurationInHours *float64             `json:"duration_in_hours"`
	Completed       bool                 `json:"completed"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func formatRecord(r SleepRecord) Response {
	return Response{
		ID:              r.ID,
		User:            user.Compact(r.User),
		ClockInAt:       r.ClockInAt,
		ClockOutAt:      r.ClockOutAt,
		DurationInHours: r.DurationInHours(),
		Completed:       r.Completed(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func formatRecords(records []SleepRecord) []Response {
	responses := make([]Response, 0, len(records))
	for _, r := range records {
		responses = append(responses, formatRecord(r))
	}
	return responses
}

func respondFailure(c *gin.Context, res *result.ServiceResult) {
	body := gin.H{"status": "error", "message": res.Message}
	if len(res.Errors) > 0 {
		body["details"] = res.Errors
	}
	c.JSON(res.HTTPStatus(), body)
}

// 缓存键带用户id前缀，clock-in/clock-out/删除时按用户整体失效。
func cacheKey(userID, rest string) string {
	return fmt.Sprintf("sleep_records/%s/%s", userID, rest)
}

func invalidateUser(userID string) {
	cache.DeleteMatching("sleep_records/" + userID)
}

// --- 控制器函数 ---

// Index 处理 GET /api/v1/users/:id/sleep_records
func Index(c *gin.Context) {
	userID := c.Param("id")
	key := cacheKey(userID, "index/"+c.Request.URL.RawQuery)
	if cache.ServeCached(c, key) {
		return
	}

	p := pagination.ParseParams(c.Query("page"), c.Query("per_page"))
	res := FindAllByUser(userID, p)
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	responses := formatRecords(res.Data.([]SleepRecord))
	cache.ServeAndCache(c, key, http.StatusOK, gin.H{"sleep_records": responses, "pagination": res.Meta})
}

// Show 处理 GET /api/v1/users/:id/sleep_records/:record_id
func Show(c *gin.Context) {
	userID := c.Param("id")
	recordID := c.Param("record_id")
	key := cacheKey(userID, "show/"+recordID)
	if cache.ServeCached(c, key) {
		return
	}

	res := FindByID(userID, recordID)
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	cache.ServeAndCache(c, key, http.StatusOK, formatRecord(*res.Data.(*SleepRecord)))
}

// ClockInHandler 处理 POST /api/v1/users/:id/sleep_records/clock_in
func ClockInHandler(c *gin.Context) {
	userID := c.Param("id")
	res := ClockIn(userID)
	invalidateUser(userID)
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	c.JSON(http.StatusCreated, formatRecordWithOwner(res))
}

// ClockOutHandler 处理 POST /api/v1/users/:id/sleep_records/clock_out
func ClockOutHandler(c *gin.Context) {
	userID := c.Param("id")
	res := ClockOut(userID)
	invalidateUser(userID)
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	c.JSON(http.StatusOK, formatRecordWithOwner(res))
}

// Current 处理 GET /api/v1/users/:id/sleep_records/current
func Current(c *gin.Context) {
	userID := c.Param("id")
	key := cacheKey(userID, "current")
	if cache.ServeCached(c, key) {
		return
	}

	res := GetCurrent(userID)
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	cache.ServeAndCache(c, key, http.StatusOK, formatRecord(*res.Data.(*SleepRecord)))
}

// Friends 处理 GET /api/v1/users/:id/sleep_records/friends
func Friends(c *gin.Context) {
	userID := c.Param("id")
	key := cacheKey(userID, "friends/"+c.Request.URL.RawQuery)
	if cache.ServeCached(c, key) {
		return
	}

	p := pagination.ParseParams(c.Query("page"), c.Query("per_page"))
	res := GetFriendsRecords(userID, p)
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	responses := formatRecords(res.Data.([]SleepRecord))
	cache.ServeAndCache(c, key, http.StatusOK, gin.H{"friends_sleep_records": responses, "pagination": res.Meta})
}

// DestroyHandler 处理 DELETE /api/v1/users/:id/sleep_records/:record_id
func DestroyHandler(c *gin.Context) {
	userID := c.Param("id")
	res := Destroy(userID, c.Param("record_id"))
	invalidateUser(userID)
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	c.Status(http.StatusNoContent)
}

// formatRecordWithOwner 序列化clock-in/clock-out返回的记录。
// 事务内创建的记录没有预加载归属用户，这里补一次查询。
func formatRecordWithOwner(res *result.ServiceResult) Response {
	r := res.Data.(*SleepRecord)
	if r.User.ID == "" {
		if owner, err := user.GetByID(r.UserID); err == nil {
			r.User = *owner
		}
	}
	return formatRecord(*r)
}
