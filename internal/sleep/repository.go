package sleep

import (
	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"gorm.io/gorm"
)

// getByID 查找用户名下的一条睡眠记录。
// 记录存在但不属于该用户时同样返回gorm.ErrRecordNotFound。
func getByID(userID, id string) (*SleepRecord, error) {
	var r SleepRecord
	err := database.DB.
		Preload("User").
		Where("user_id = ? AND id = ?", userID, id).
		Take(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// currentRecord 返回用户最近创建的、clock_out_at为null的记录。
// 部分唯一索引保证了这样的记录至多一条。
func currentRecord(userID string) (*SleepRecord, error) {
	var r SleepRecord
	err := database.DB.
		Preload("User").
		Where("user_id = ? AND clock_out_at IS NULL", userID).
		Order("created_at DESC, id DESC").
		Take(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// listByUser 按创建时间倒序返回用户的一页睡眠记录和总行数。
func listByUser(userID string, p pagination.Params) ([]SleepRecord, int64, error) {
	// Session使base可以安全复用，Count和Find各自从这里克隆出新的语句。
	base := database.DB.Model(&SleepRecord{}).Where("user_id = ?", userID).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []SleepRecord
	err := base.
		Preload("User").
		Order("created_at DESC, id DESC").
		Scopes(pagination.Scope(p)).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// friendsRecords 返回用户关注的所有人的已完成睡眠记录，
// 按创建时间倒序。进行中的记录被排除。
func friendsRecords(userID string, p pagination.Params) ([]SleepRecord, int64, error) {
	base := database.DB.Model(&SleepRecord{}).
		Joins("JOIN follows ON follows.following_id = sleep_records.user_id").
		Where("follows.follower_id = ?", userID).
		Where("sleep_records.clock_out_at IS NOT NULL").
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []SleepRecord
	err := base.
		Preload("User").
		Order("sleep_records.created_at DESC, sleep_records.id DESC").
		Scopes(pagination.Scope(p)).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
