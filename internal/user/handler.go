package user

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/good-night-backend/internal/platform/cache"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"github.com/SlpAus/good-night-backend/pkg/result"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

// Response 是用户在所有列表类接口中的序列化形态。
type Response struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
}

// DetailResponse 在详情接口上额外内嵌完整的粉丝与关注列表。
type DetailResponse struct {
	Response
	Followers []Response `json:"followers"`
	Following []Response `json:"following"`
}

// CompactResponse 是供其他模块内嵌的用户摘要，不带计数字段。
type CompactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Compact 把用户转换为内嵌摘要。
func Compact(u User) CompactResponse {
	return CompactResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

// formatUser 把用户转换为带关注计数的响应模型。
func formatUser(u User) (Response, error) {
	followers, err := CountFollowers(u.ID)
	if err != nil {
		return Response{}, err
	}
	following, err := CountFollowing(u.ID)
	if err != nil {
		return Response{}, err
	}
	return Response{
		ID:             u.ID,
		Name:           u.Name,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
		FollowersCount: followers,
		FollowingCount: following,
	}, nil
}

func formatUsers(users []User) ([]Response, error) {
	responses := make([]Response, 0, len(users))
	for _, u := range users {
		r, err := formatUser(u)
		if err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, nil
}

// respondFailure 把失败的服务结果映射为HTTP错误响应。
func respondFailure(c *gin.Context, res *result.ServiceResult) {
	body := gin.H{"status": "error", "message": res.Message}
	if len(res.Errors) > 0 {
		body["details"] = res.Errors
	}
	c.JSON(res.HTTPStatus(), body)
}

// --- 请求模型 ---

type userParams struct {
	User struct {
		Name string `json:"name"`
	} `json:"user" binding:"required"`
}

// --- 控制器函数 ---

// Index 处理 GET /api/v1/users
func Index(c *gin.Context) {
	key := fmt.Sprintf("users/index/%s", c.Request.URL.RawQuery)
	if cache.ServeCached(c, key) {
		return
	}

	p := pagination.ParseParams(c.Query("page"), c.Query("per_page"))
	res := FindAll(p)
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	responses, err := formatUsers(res.Data.([]User))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize users"})
		return
	}
	cache.ServeAndCache(c, key, http.StatusOK, gin.H{"users": responses, "pagination": res.Meta})
}

// Show 处理 GET /api/v1/users/:id
func Show(c *gin.Context) {
	id := c.Param("id")
	key := fmt.Sprintf("users/show/%s", id)
	if cache.ServeCached(c, key) {
		return
	}

	res := FindByID(id)
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	u := res.Data.(*User)
	base, err := formatUser(*u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize user"})
		return
	}
	followers, err := AllFollowers(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load followers"})
		return
	}
	following, err := AllFollowing(u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load following"})
		return
	}
	followerResponses, err := formatUsers(followers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize followers"})
		return
	}
	followingResponses, err := formatUsers(following)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize following"})
		return
	}

	cache.ServeAndCache(c, key, http.StatusOK, DetailResponse{
		Response:  base,
		Followers: followerResponses,
		Following: followingResponses,
	})
}

// CreateHandler 处理 POST /api/v1/users
func CreateHandler(c *gin.Context) {
	var params userParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Parameter missing: user"})
		return
	}

	res := Create(params.User.Name)
	cache.DeleteMatching("users/")
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	u := res.Data.(*User)
	response, err := formatUser(*u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize user"})
		return
	}
	c.JSON(http.StatusCreated, response)
}

// UpdateHandler 处理 PATCH /api/v1/users/:id
func UpdateHandler(c *gin.Context) {
	var params userParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Parameter missing: user"})
		return
	}

	res := Update(c.Param("id"), params.User.Name)
	cache.DeleteMatching("users/")
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	u := res.Data.(*User)
	response, err := formatUser(*u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize user"})
		return
	}
	c.JSON(http.StatusOK, response)
}

// DestroyHandler 处理 DELETE /api/v1/users/:id
func DestroyHandler(c *gin.Context) {
	res := Destroy(c.Param("id"))
	// 级联删除同时影响关注边和睡眠记录的读缓存
	cache.DeleteMatching("users/")
	cache.DeleteMatching("follows/")
	cache.DeleteMatching("sleep_records/")
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	c.Status(http.StatusNoContent)
}

// Followers 处理 GET /api/v1/users/:id/followers
func Followers(c *gin.Context) {
	id := c.Param("id")
	key := fmt.Sprintf("users/%s/followers/%s", id, c.Request.URL.RawQuery)
	if cache.ServeCached(c, key) {
		return
	}

	p := pagination.ParseParams(c.Query("page"), c.Query("per_page"))
	res := GetFollowers(id, p)
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	responses, err := formatUsers(res.Data.([]User))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize followers"})
		return
	}
	cache.ServeAndCache(c, key, http.StatusOK, gin.H{"followers": responses, "pagination": res.Meta})
}

// Following 处理 GET /api/v1/users/:id/following
func Following(c *gin.Context) {
	id := c.Param("id")
	key := fmt.Sprintf("users/%s/following/%s", id, c.Request.URL.RawQuery)
	if cache.ServeCached(c, key) {
		return
	}

	p := pagination.ParseParams(c.Query("page"), c.Query("per_page"))
	res := GetFollowing(id, p)
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	responses, err := formatUsers(res.Data.([]User))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to serialize following"})
		return
	}
	cache.ServeAndCache(c, key, http.StatusOK, gin.H{"following": responses, "pagination": res.Meta})
}
