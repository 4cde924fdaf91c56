package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 定义了用户在数据库中的持久化模型。
// 关注关系和睡眠记录分别由follow和sleep模块持有，
// 这里不挂载任何惰性的关联集合，相关查询都是显式的、以用户id为参数的函数。
type User struct {
	// ID 是用户的主键，由存储层在创建时生成，创建后不可变。
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	// Name 是用户名，非空且全局唯一，按存储值区分大小写。
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 在插入前生成UUID v7主键。
// v7带时间前缀，保证主键顺序与创建顺序一致，可以充当排序的次级键。
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID != "" {
		return nil
	}
	newUUID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("无法生成UUID v7: %w", err)
	}
	u.ID = newUUID.String()
	return nil
}
