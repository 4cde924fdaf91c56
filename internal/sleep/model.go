package sleep

import (
	"fmt"
	"time"

	"github.com/SlpAus/good-night-backend/internal/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SleepRecord 是一次睡眠会话。clock_out_at为null表示会话仍在进行中。
// "每个用户至多一条进行中的记录"由sleep模块迁移时创建的部分唯一索引兜底。
type SleepRecord struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	UserID string `gorm:"type:varchar(36);not null;index" json:"user_id"`

	ClockInAt  time.Time  `gorm:"not null" json:"clock_in_at"`
	ClockOutAt *time.Time `json:"clock_out_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 归属用户，用户删除时记录被级联清除。
	User user.User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// BeforeCreate 在插入前生成UUID v7主键。
func (r *SleepRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID != "" {
		return nil
	}
	newUUID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("无法生成UUID v7: %w", err)
	}
	r.ID = newUUID.String()
	return nil
}

// Completed 报告会话是否已结束。
func (r *SleepRecord) Completed() bool {
	return r.ClockOutAt != nil
}

// DurationInHours 返回会话时长（小时）。会话未结束时无定义，返回nil。
func (r *SleepRecord) DurationInHours() *float64 {
	if r.ClockOutAt == nil {
		return nil
	}
	hours := r.ClockOutAt.Sub(r.ClockInAt).Hours()
	return &hours
}

// validate 在持久化之前同步执行睡眠记录的字段级校验。
func validate(r *SleepRecord) []string {
	var errs []string

	if r.ClockInAt.IsZero() {
		errs = append(errs, "Clock in at can't be blank")
	}
	if r.ClockOutAt != nil && !r.ClockInAt.IsZero() && !r.ClockOutAt.After(r.ClockInAt) {
		errs = append(errs, "Clock out at must be after clock in time")
	}
	return errs
}
