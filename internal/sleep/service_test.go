package sleep_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/SlpAus/good-night-backend/internal/follow"
	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/internal/sleep"
	"github.com/SlpAus/good-night-backend/internal/user"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"github.com/SlpAus/good-night-backend/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db

	require.NoError(t, user.PrimeDB())
	require.NoError(t, follow.PrimeDB())
	require.NoError(t, sleep.PrimeDB())
}

func createUser(t *testing.T, name string) *user.User {
	t.Helper()
	res := user.Create(name)
	require.True(t, res.Success, "创建用户 %s 失败: %s %v", name, res.Message, res.Errors)
	return res.Data.(*user.User)
}

// completedRecord 为用户完成一次完整的clock-in/clock-out，返回已结束的记录。
func completedRecord(t *testing.T, userID string) *sleep.SleepRecord {
	t.Helper()
	require.True(t, sleep.ClockIn(userID).Success)
	res := sleep.ClockOut(userID)
	require.True(t, res.Success)
	return res.Data.(*sleep.SleepRecord)
}

func defaultPage() pagination.Params {
	return pagination.Params{Page: 1, PerPage: 20}
}

func countRecords(t *testing.T, userID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.DB.Table("sleep_records").Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestClockIn(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	res := sleep.ClockIn(alice.ID)
	require.True(t, res.Success)
	assert.Equal(t, "Successfully clocked in", res.Message)

	r := res.Data.(*sleep.SleepRecord)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, alice.ID, r.UserID)
	assert.False(t, r.ClockInAt.IsZero())
	assert.Nil(t, r.ClockOutAt)
	assert.False(t, r.Completed())

	assert.Equal(t, int64(1), countRecords(t, alice.ID))
}

func TestClockInTwiceFails(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	require.True(t, sleep.ClockIn(alice.ID).Success)

	// 已有进行中的会话时再次clock-in是领域失败
	res := sleep.ClockIn(alice.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindFailed, res.Kind)
	assert.Equal(t, "Failed to clock in. User might already have an ongoing sleep record.", res.Message)

	assert.Equal(t, int64(1), countRecords(t, alice.ID))
}

func TestClockInUserNotFound(t *testing.T) {
	newTestDB(t)

	res := sleep.ClockIn("missing-id")
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
	assert.Equal(t, "Couldn't find User with 'id'=missing-id", res.Message)
}

func TestClockOut(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	require.True(t, sleep.ClockIn(alice.ID).Success)

	res := sleep.ClockOut(alice.ID)
	require.True(t, res.Success)
	assert.Equal(t, "Successfully clocked out", res.Message)

	r := res.Data.(*sleep.SleepRecord)
	require.NotNil(t, r.ClockOutAt)
	assert.True(t, r.ClockOutAt.After(r.ClockInAt))
	assert.True(t, r.Completed())
}

func TestClockOutWithoutOngoingFails(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	res := sleep.ClockOut(alice.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindFailed, res.Kind)
	assert.Equal(t, "Failed to clock out. No ongoing sleep record found.", res.Message)

	// clock-out后会话已结束，再次clock-out同样失败
	completedRecord(t, alice.ID)
	res = sleep.ClockOut(alice.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindFailed, res.Kind)
}

func TestClockInAfterClockOut(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	completedRecord(t, alice.ID)

	// 上一次会话结束后可以开启新会话
	require.True(t, sleep.ClockIn(alice.ID).Success)
	assert.Equal(t, int64(2), countRecords(t, alice.ID))
}

func TestDurationInHours(t *testing.T) {
	clockIn := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(2 * time.Hour)

	r := &sleep.SleepRecord{ClockInAt: clockIn, ClockOutAt: &clockOut}
	d := r.DurationInHours()
	require.NotNil(t, d)
	assert.Equal(t, 2.0, *d)

	// 进行中的会话没有时长
	open := &sleep.SleepRecord{ClockInAt: clockIn}
	assert.Nil(t, open.DurationInHours())
}

func TestGetCurrent(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	created := sleep.ClockIn(alice.ID)
	require.True(t, created.Success)

	res := sleep.GetCurrent(alice.ID)
	require.True(t, res.Success)
	assert.Equal(t, created.Data.(*sleep.SleepRecord).ID, res.Data.(*sleep.SleepRecord).ID)
}

func TestGetCurrentNone(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	res := sleep.GetCurrent(alice.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
	assert.Equal(t, "No ongoing sleep record found", res.Message)

	// 已结束的会话不算进行中
	completedRecord(t, alice.ID)
	res = sleep.GetCurrent(alice.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
}

func TestFindAllByUser(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	first := completedRecord(t, alice.ID)
	second := completedRecord(t, alice.ID)
	third := completedRecord(t, alice.ID)

	res := sleep.FindAllByUser(alice.ID, pagination.Params{Page: 1, PerPage: 2})
	require.True(t, res.Success)

	records := res.Data.([]sleep.SleepRecord)
	require.Len(t, records, 2)
	// 最新的记录排在最前
	assert.Equal(t, third.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
	assert.Equal(t, "alice", records[0].User.Name)

	assert.Equal(t, int64(3), res.Meta.TotalCount)
	assert.Equal(t, 2, res.Meta.TotalPages)

	res = sleep.FindAllByUser(alice.ID, pagination.Params{Page: 2, PerPage: 2})
	require.True(t, res.Success)
	records = res.Data.([]sleep.SleepRecord)
	require.Len(t, records, 1)
	assert.Equal(t, first.ID, records[0].ID)
}

func TestFindAllByUserNotFound(t *testing.T) {
	newTestDB(t)

	res := sleep.FindAllByUser("missing-id", defaultPage())
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
}

func TestFindByIDScopedToOwner(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	r := completedRecord(t, alice.ID)

	res := sleep.FindByID(alice.ID, r.ID)
	require.True(t, res.Success)
	assert.Equal(t, r.ID, res.Data.(*sleep.SleepRecord).ID)

	// 记录存在但属于别人，对bob来说就是不存在
	res = sleep.FindByID(bob.ID, r.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
	assert.Equal(t, fmt.Sprintf("Couldn't find SleepRecord with 'id'=%s", r.ID), res.Message)
}

func TestGetFriendsRecords(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	carol := createUser(t, "carol")

	require.True(t, follow.FollowUser(alice.ID, bob.ID).Success)

	bobFirst := completedRecord(t, bob.ID)
	bobSecond := completedRecord(t, bob.ID)
	// bob进行中的会话不应出现在好友动态里
	require.True(t, sleep.ClockIn(bob.ID).Success)
	// carol未被alice关注，她的记录不可见
	completedRecord(t, carol.ID)
	// alice自己的记录也不在自己的好友动态里
	completedRecord(t, alice.ID)

	res := sleep.GetFriendsRecords(alice.ID, defaultPage())
	require.True(t, res.Success)

	records := res.Data.([]sleep.SleepRecord)
	require.Len(t, records, 2)
	assert.Equal(t, bobSecond.ID, records[0].ID)
	assert.Equal(t, bobFirst.ID, records[1].ID)
	assert.Equal(t, "bob", records[0].User.Name)
	assert.Equal(t, int64(2), res.Meta.TotalCount)
}

func TestGetFriendsRecordsPagination(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	require.True(t, follow.FollowUser(alice.ID, bob.ID).Success)
	for i := 0; i < 3; i++ {
		completedRecord(t, bob.ID)
	}

	res := sleep.GetFriendsRecords(alice.ID, pagination.Params{Page: 2, PerPage: 2})
	require.True(t, res.Success)
	assert.Len(t, res.Data.([]sleep.SleepRecord), 1)
	assert.Equal(t, int64(3), res.Meta.TotalCount)
	assert.Equal(t, 2, res.Meta.CurrentPage)
}

func TestGetFriendsRecordsEmpty(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	res := sleep.GetFriendsRecords(alice.ID, defaultPage())
	require.True(t, res.Success)
	assert.Empty(t, res.Data.([]sleep.SleepRecord))
	assert.Equal(t, int64(0), res.Meta.TotalCount)
}

func TestDestroySleepRecord(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	r := completedRecord(t, alice.ID)

	// 别人不能删除不属于自己的记录
	res := sleep.Destroy(bob.ID, r.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
	assert.Equal(t, int64(1), countRecords(t, alice.ID))

	res = sleep.Destroy(alice.ID, r.ID)
	require.True(t, res.Success)
	assert.Equal(t, "Sleep record deleted successfully", res.Message)
	assert.Equal(t, int64(0), countRecords(t, alice.ID))

	res = sleep.Destroy(alice.ID, r.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
}
