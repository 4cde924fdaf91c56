package follow

import (
	"errors"
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/internal/user"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"github.com/SlpAus/good-night-backend/pkg/result"
	"gorm.io/gorm"
)

// NotFoundMessage 生成关注边不存在时的统一提示。
func NotFoundMessage(id string) string {
	return fmt.Sprintf("Couldn't find Follow with 'id'=%s", id)
}

// FindAll 返回一页关注边列表和分页元数据。
func FindAll(p pagination.Params) *result.ServiceResult {
	follows, total, err := listFollows(p)
	if err != nil {
		return result.Failed("Failed to list follow relationships")
	}
	return result.OKWithMeta(follows, pagination.NewMeta(total, p))
}

// FindByID 按id查找单条关注边。
func FindByID(id string) *result.ServiceResult {
	f, err := getByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to find follow relationship")
	}
	return result.OK(f, "")
}

// Create 校验并创建一条关注边。
// 自关注和重复关注在这条直接创建路径上都是校验失败。
func Create(followerID, followingID string) *result.ServiceResult {
	f := &Follow{FollowerID: followerID, FollowingID: followingID}

	errs, err := validate(f)
	if err != nil {
		return result.Failed("Failed to create follow relationship")
	}
	if len(errs) > 0 {
		return result.Invalid("Failed to create follow relationship", errs)
	}

	if err := database.DB.Create(f).Error; err != nil {
		// 校验和插入之间存在并发窗口，复合唯一索引让后到者在这里失败
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return result.Invalid("Failed to create follow relationship", []string{"Follower has already been taken"})
		}
		return result.Failed("Failed to create follow relationship")
	}

	created, err := getByID(f.ID)
	if err != nil {
		return result.Failed("Failed to create follow relationship")
	}
	return result.OK(created, "Follow relationship created successfully")
}

// Destroy 删除一条关注边。
func Destroy(id string) *result.ServiceResult {
	f, err := getByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to delete follow relationship")
	}

	if err := database.DB.Delete(&Follow{}, "id = ?", f.ID).Error; err != nil {
		return result.Failed("Failed to delete follow relationship")
	}
	return result.OK(nil, "Follow relationship deleted successfully")
}

// IsFollowing 报告follower是否关注着target。
func IsFollowing(followerID, targetID string) (bool, error) {
	return edgeExists(followerID, targetID)
}

// FollowUser 实现用户层面的follow操作。
// 与Create的不对称性是有意保留的: 自关注在这里是软失败（generic failure），
// 已存在的边是幂等的成功no-op，不产生重复边也不报错。
func FollowUser(followerID, targetID string) *result.ServiceResult {
	if _, err := user.GetByID(followerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(user.NotFoundMessage(followerID))
		}
		return result.Failed("Failed to follow user")
	}
	if _, err := user.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(user.NotFoundMessage(targetID))
		}
		return result.Failed("Failed to follow user")
	}

	if followerID == targetID {
		return result.Failed("Failed to follow user")
	}

	exists, err := edgeExists(followerID, targetID)
	if err != nil {
		return result.Failed("Failed to follow user")
	}
	if exists {
		return result.OK(nil, "Successfully followed user")
	}

	f := &Follow{FollowerID: followerID, FollowingID: targetID}
	if err := database.DB.Create(f).Error; err != nil {
		// 并发的重复follow撞上唯一索引，结果上仍然是幂等成功
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return result.OK(nil, "Successfully followed user")
		}
		return result.Failed("Failed to follow user")
	}
	return result.OK(nil, "Successfully followed user")
}

// UnfollowUser 实现用户层面的unfollow操作。边不存在时是幂等的no-op。
func UnfollowUser(followerID, targetID string) *result.ServiceResult {
	if _, err := user.GetByID(followerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(user.NotFoundMessage(followerID))
		}
		return result.Failed("Failed to unfollow user")
	}
	if _, err := user.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(user.NotFoundMessage(targetID))
		}
		return result.Failed("Failed to unfollow user")
	}

	if _, err := deleteEdge(followerID, targetID); err != nil {
		return result.Failed("Failed to unfollow user")
	}
	return result.OK(nil, "Successfully unfollowed user")
}
