package follow

import (
	"fmt"
	"time"

	"github.com/SlpAus/good-night-backend/internal/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow 是一条有向的关注边: follower观察following的睡眠动态。
// (follower_id, following_id)组合唯一，由复合唯一索引兜底，
// 并发的重复创建会在数据库层失败。
type Follow struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	FollowerID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_follows_follower_following,priority:1" json:"follower_id"`
	FollowingID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_follows_follower_following,priority:2;index" json:"following_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 两个端点的外键约束。边不独占任何一端，但要求两端都存在。
	Follower  user.User `gorm:"foreignKey:FollowerID;references:ID" json:"-"`
	Following user.User `gorm:"foreignKey:FollowingID;references:ID" json:"-"`
}

// BeforeCreate 在插入前生成UUID v7主键。
func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID != "" {
		return nil
	}
	newUUID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("无法生成UUID v7: %w", err)
	}
	f.ID = newUUID.String()
	return nil
}
