package sleep

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/internal/user"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"github.com/SlpAus/good-night-backend/pkg/result"
	"gorm.io/gorm"
)

const (
	clockInFailedMessage  = "Failed to clock in. User might already have an ongoing sleep record."
	clockOutFailedMessage = "Failed to clock out. No ongoing sleep record found."
	noOngoingMessage      = "No ongoing sleep record found"
)

// NotFoundMessage 生成睡眠记录不存在时的统一提示。
func NotFoundMessage(id string) string {
	return fmt.Sprintf("Couldn't find SleepRecord with 'id'=%s", id)
}

// findUser 把用户存在性检查收敛为统一的NotFound结果。
func findUser(id string) *result.ServiceResult {
	if _, err := user.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(user.NotFoundMessage(id))
		}
		return result.Failed("Failed to find user")
	}
	return nil
}

// FindAllByUser 返回用户的睡眠记录分页列表，按创建时间倒序。
func FindAllByUser(userID string, p pagination.Params) *result.ServiceResult {
	if res := findUser(userID); res != nil {
		return res
	}

	records, total, err := listByUser(userID, p)
	if err != nil {
		return result.Failed("Failed to list sleep records")
	}
	return result.OKWithMeta(records, pagination.NewMeta(total, p))
}

// FindByID 查找用户名下的一条睡眠记录。
func FindByID(userID, id string) *result.ServiceResult {
	if res := findUser(userID); res != nil {
		return res
	}

	r, err := getByID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to find sleep record")
	}
	return result.OK(r, "")
}

// ClockIn 为用户开启一次新的睡眠会话。
// 已有进行中会话时拒绝，这是领域失败而不是校验失败。
// 检查和插入在同一事务内完成，并发竞争由部分唯一索引兜底，
// 输掉竞争的一方会以同样的领域失败收场，而不是悄悄开出第二个会话。
func ClockIn(userID string) *result.ServiceResult {
	if res := findUser(userID); res != nil {
		return res
	}

	var created *SleepRecord
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing SleepRecord
		err := tx.Where("user_id = ? AND clock_out_at IS NULL", userID).Take(&existing).Error
		if err == nil {
			return gorm.ErrDuplicatedKey
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		r := &SleepRecord{UserID: userID, ClockInAt: time.Now()}
		if err := tx.Create(r).Error; err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return result.Failed(clockInFailedMessage)
	}

	return result.OK(created, "Successfully clocked in")
}

// ClockOut 结束用户当前进行中的睡眠会话。
// clock_out_at只被设置这一次，从null变为具体时间戳。
func ClockOut(userID string) *result.ServiceResult {
	if res := findUser(userID); res != nil {
		return res
	}

	r, err := currentRecord(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.Failed(clockOutFailedMessage)
		}
		return result.Failed(clockOutFailedMessage)
	}

	now := time.Now()
	r.ClockOutAt = &now
	if errs := validate(r); len(errs) > 0 {
		return result.Failed(clockOutFailedMessage)
	}

	if err := database.DB.Save(r).Error; err != nil {
		return result.Failed(clockOutFailedMessage)
	}
	return result.OK(r, "Successfully clocked out")
}

// GetCurrent 返回用户当前进行中的睡眠记录。
func GetCurrent(userID string) *result.ServiceResult {
	if res := findUser(userID); res != nil {
		return res
	}

	r, err := currentRecord(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(noOngoingMessage)
		}
		return result.Failed("Failed to find current sleep record")
	}
	return result.OK(r, "")
}

// GetFriendsRecords 返回用户关注的所有人的已完成睡眠记录分页列表。
func GetFriendsRecords(userID string, p pagination.Params) *result.ServiceResult {
	if res := findUser(userID); res != nil {
		return res
	}

	records, total, err := friendsRecords(userID, p)
	if err != nil {
		return result.Failed("Failed to list friends sleep records")
	}
	return result.OKWithMeta(records, pagination.NewMeta(total, p))
}

// Destroy 删除用户名下的一条睡眠记录。
func Destroy(userID, id string) *result.ServiceResult {
	if res := findUser(userID); res != nil {
		return res
	}

	r, err := getByID(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to delete sleep record")
	}

	if err := database.DB.Delete(&SleepRecord{}, "id = ?", r.ID).Error; err != nil {
		return result.Failed("Failed to delete sleep record")
	}
	return result.OK(nil, "Sleep record deleted successfully")
}
