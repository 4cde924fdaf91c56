package follow_test

import (
	"fmt"
	"testing"

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

func TestCreateFollow(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	res := follow.Create(alice.ID, bob.ID)
	require.True(t, res.Success)
	assert.Equal(t, "Follow relationship created successfully", res.Message)

	f := res.Data.(*follow.Follow)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, alice.ID, f.FollowerID)
	assert.Equal(t, bob.ID, f.FollowingID)
	assert.Equal(t, "alice", f.Follower.Name)
	assert.Equal(t, "bob", f.Following.Name)

	// 创建后可按id取回
	found := follow.FindByID(f.ID)
	require.True(t, found.Success)
	assert.Equal(t, f.ID, found.Data.(*follow.Follow).ID)
}

func TestCreateFollowSelf(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	res := follow.Create(alice.ID, alice.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindInvalid, res.Kind)
	assert.Contains(t, res.Errors, "Following cannot follow yourself")
}

func TestCreateFollowDuplicate(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	require.True(t, follow.Create(alice.ID, bob.ID).Success)

	res := follow.Create(alice.ID, bob.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindInvalid, res.Kind)
	assert.Contains(t, res.Errors, "Follower has already been taken")
}

func TestCreateFollowReverseDirectionAllowed(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	require.True(t, follow.Create(alice.ID, bob.ID).Success)
	// 反方向是另一条边，不算重复
	require.True(t, follow.Create(bob.ID, alice.ID).Success)
}

func TestCreateFollowMissingEndpoints(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	res := follow.Create(alice.ID, "missing-id")
	require.True(t, res.Failure())
	assert.Equal(t, result.KindInvalid, res.Kind)
	assert.Contains(t, res.Errors, "Following must exist")

	res = follow.Create("missing-id", alice.ID)
	require.True(t, res.Failure())
	assert.Contains(t, res.Errors, "Follower must exist")
}

func TestFindAllFollows(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")
	carol := createUser(t, "carol")

	require.True(t, follow.Create(alice.ID, bob.ID).Success)
	require.True(t, follow.Create(bob.ID, carol.ID).Success)
	require.True(t, follow.Create(carol.ID, alice.ID).Success)

	res := follow.FindAll(pagination.Params{Page: 1, PerPage: 2})
	require.True(t, res.Success)

	follows := res.Data.([]follow.Follow)
	require.Len(t, follows, 2)
	assert.Equal(t, alice.ID, follows[0].FollowerID)
	assert.Equal(t, bob.ID, follows[1].FollowerID)
	assert.Equal(t, "alice", follows[0].Follower.Name)

	assert.Equal(t, int64(3), res.Meta.TotalCount)
	assert.Equal(t, 2, res.Meta.TotalPages)
}

func TestFindFollowNotFound(t *testing.T) {
	newTestDB(t)

	res := follow.FindByID("missing-id")
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
	assert.Equal(t, "Couldn't find Follow with 'id'=missing-id", res.Message)
}

func TestDestroyFollow(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	created := follow.Create(alice.ID, bob.ID)
	require.True(t, created.Success)
	id := created.Data.(*follow.Follow).ID

	res := follow.Destroy(id)
	require.True(t, res.Success)
	assert.Equal(t, "Follow relationship deleted successfully", res.Message)

	assert.Equal(t, result.KindNotFound, follow.FindByID(id).Kind)

	res = follow.Destroy(id)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
}

func TestFollowUser(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	res := follow.FollowUser(alice.ID, bob.ID)
	require.True(t, res.Success)
	assert.Equal(t, "Successfully followed user", res.Message)

	following, err := follow.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// 单向边: bob没有反向关注alice
	reverse, err := follow.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)
}

func TestFollowUserSelfIsSoftFailure(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	// 用户层面的自关注是软失败，不是校验错误
	res := follow.FollowUser(alice.ID, alice.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindFailed, res.Kind)
	assert.Equal(t, "Failed to follow user", res.Message)
	assert.Empty(t, res.Errors)
}

func TestFollowUserIdempotent(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	require.True(t, follow.FollowUser(alice.ID, bob.ID).Success)
	// 重复follow是幂等的成功no-op，不产生重复边
	require.True(t, follow.FollowUser(alice.ID, bob.ID).Success)

	var count int64
	require.NoError(t, database.DB.Table("follows").
		Where("follower_id = ? AND following_id = ?", alice.ID, bob.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowUserNotFound(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	res := follow.FollowUser(alice.ID, "missing-id")
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)

	res = follow.FollowUser("missing-id", alice.ID)
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
}

func TestUnfollowUser(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	require.True(t, follow.FollowUser(alice.ID, bob.ID).Success)

	res := follow.UnfollowUser(alice.ID, bob.ID)
	require.True(t, res.Success)
	assert.Equal(t, "Successfully unfollowed user", res.Message)

	following, err := follow.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestUnfollowUserIdempotent(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")
	bob := createUser(t, "bob")

	// 不存在的边，unfollow依然是成功的no-op
	res := follow.UnfollowUser(alice.ID, bob.ID)
	require.True(t, res.Success)
}

func TestUnfollowUserNotFound(t *testing.T) {
	newTestDB(t)
	alice := createUser(t, "alice")

	res := follow.UnfollowUser(alice.ID, "missing-id")
	require.True(t, res.Failure())
	assert.Equal(t, result.KindNotFound, res.Kind)
}
