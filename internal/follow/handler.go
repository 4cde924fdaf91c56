package follow

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

// Response 是关注边的序列化形态，内嵌两端用户的摘要。
type Response struct {
	ID        string               `json:"id"`
	Follower  user.CompactResponse `json:"follower"`
	Following user.CompactResponse `json:"following"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func formatFollow(f Follow) Response {
	return Response{
		ID:        f.ID,
		Follower:  user.Compact(f.Follower),
		Following: user.Compact(f.Following),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func formatFollows(follows []Follow) []Response {
	responses := make([]Response, 0, len(follows))
	for _, f := range follows {
		responses = append(responses, formatFollow(f))
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

// --- 请求模型 ---

type followParams struct {
	Follow struct {
		FollowerID  string `json:"follower_id"`
		FollowingID string `json:"following_id"`
	} `json:"follow" binding:"required"`
}

type targetUserParams struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
}

// --- 控制器函数 ---

// Index 处理 GET /api/v1/follows
func Index(c *gin.Context) {
	key := fmt.Sprintf("follows/index/%s", c.Request.URL.RawQuery)
	if cache.ServeCached(c, key) {
		return
	}

	p := pagination.ParseParams(c.Query("page"), c.Query("per_page"))
	res := FindAll(p)
	if res.Failure() {
		respondFailure(c, res)
		return
	}

	responses := formatFollows(res.Data.([]Follow))
	cache.ServeAndCache(c, key, http.StatusOK, gin.H{"follows": responses, "pagination": res.Meta})
}

// Show 处理 GET /api/v1/follows/:id
func Show(c *gin.Context) {
	id := c.Param("id")
	key := fmt.Sprintf("follows/show/%s", id)
	if cache.ServeCached(c, key) {
		return
	}

	res := FindByID(id)
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	cache.ServeAndCache(c, key, http.StatusOK, formatFollow(*res.Data.(*Follow)))
}

// CreateHandler 处理 POST /api/v1/follows
func CreateHandler(c *gin.Context) {
	var params followParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Parameter missing: follow"})
		return
	}

	res := Create(params.Follow.FollowerID, params.Follow.FollowingID)
	cache.DeleteMatching("follows/")
	cache.DeleteMatching("users/")
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	c.JSON(http.StatusCreated, formatFollow(*res.Data.(*Follow)))
}

// DestroyHandler 处理 DELETE /api/v1/follows/:id
func DestroyHandler(c *gin.Context) {
	res := Destroy(c.Param("id"))
	cache.DeleteMatching("follows/")
	cache.DeleteMatching("users/")
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	c.Status(http.StatusNoContent)
}

// FollowUserHandler 处理 POST /api/v1/users/:id/follow
func FollowUserHandler(c *gin.Context) {
	var params targetUserParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Parameter missing: target_user_id"})
		return
	}

	res := FollowUser(c.Param("id"), params.TargetUserID)
	cache.DeleteMatching("follows/")
	cache.DeleteMatching("users/")
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": res.Message})
}

// UnfollowUserHandler 处理 DELETE /api/v1/users/:id/unfollow
func UnfollowUserHandler(c *gin.Context) {
	var params targetUserParams
	if err := c.ShouldBindJSON(&params); err != nil {
		// unfollow也接受query参数，方便不带body的DELETE请求
		params.TargetUserID = c.Query("target_user_id")
		if params.TargetUserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Parameter missing: target_user_id"})
			return
		}
	}

	res := UnfollowUser(c.Param("id"), params.TargetUserID)
	cache.DeleteMatching("follows/")
	cache.DeleteMatching("users/")
	if res.Failure() {
		respondFailure(c, res)
		return
	}
	c.Status(http.StatusNoContent)
}
