package follow

import (
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
)

// getByID 按主键查找关注边并预加载两端用户。
// 未找到时返回gorm.ErrRecordNotFound。
func getByID(id string) (*Follow, error) {
	var f Follow
	err := database.DB.
		Preload("Follower").
		Preload("Following").
		Where("id = ?", id).
		Take(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// edgeExists 检查(follower, following)组合是否已存在。
func edgeExists(followerID, followingID string) (bool, error) {
	var count int64
	err := database.DB.Model(&Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("无法检查关注边唯一性: %w", err)
	}
	return count > 0, nil
}

// listFollows 按建立顺序返回一页关注边和总行数。
func listFollows(p pagination.Params) ([]Follow, int64, error) {
	var total int64
	if err := database.DB.Model(&Follow{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var follows []Follow
	err := database.DB.
		Preload("Follower").
		Preload("Following").
		Order("created_at ASC, id ASC").
		Scopes(pagination.Scope(p)).
		Find(&follows).Error
	if err != nil {
		return nil, 0, err
	}
	return follows, total, nil
}

// deleteEdge 删除指定方向的关注边，返回实际删除的行数。
// 不存在时删除0行，调用方据此实现幂等的unfollow。
func deleteEdge(followerID, followingID string) (int64, error) {
	res := database.DB.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&Follow{})
	return res.RowsAffected, res.Error
}
