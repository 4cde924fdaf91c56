package user

import (
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"gorm.io/gorm"
)

// 本文件内对follows和sleep_records只通过表名引用，
// 避免user模块反向依赖follow/sleep模块造成导入环。

// GetByID 按主键查找用户。未找到时返回gorm.ErrRecordNotFound。
// 导出给follow和sleep模块做端点存在性检查。
func GetByID(id string) (*User, error) {
	var u User
	if err := database.DB.Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// nameTaken 检查用户名是否已被excludeID以外的用户占用。
func nameTaken(name string, excludeID string) (bool, error) {
	var count int64
	query := database.DB.Model(&User{}).Where("name = ?", name)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("无法检查用户名唯一性: %w", err)
	}
	return count > 0, nil
}

// listUsers 按创建顺序返回一页用户和总行数。
// created_at可能碰撞，带上id作为次级排序键保证结果稳定。
func listUsers(p pagination.Params) ([]User, int64, error) {
	var total int64
	if err := database.DB.Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := database.DB.
		Order("created_at ASC, id ASC").
		Scopes(pagination.Scope(p)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// followersQuery 构造"关注了userID的用户"的基础查询。
func followersQuery(userID string) *paginatedUserQuery {
	return &paginatedUserQuery{
		join:  "JOIN follows ON follows.follower_id = users.id",
		where: "follows.following_id = ?",
		arg:   userID,
	}
}

// followingQuery 构造"userID关注的用户"的基础查询。
func followingQuery(userID string) *paginatedUserQuery {
	return &paginatedUserQuery{
		join:  "JOIN follows ON follows.following_id = users.id",
		where: "follows.follower_id = ?",
		arg:   userID,
	}
}

// paginatedUserQuery 描述一个经由follows边连接出来的用户集合。
type paginatedUserQuery struct {
	join  string
	where string
	arg   string
}

// page 执行查询并返回一页结果和总行数，按边的建立顺序排序。
func (q *paginatedUserQuery) page(p pagination.Params) ([]User, int64, error) {
	// Session使base可以安全复用，Count和Find各自从这里克隆出新的语句。
	base := database.DB.Model(&User{}).Joins(q.join).Where(q.where, q.arg).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	err := base.
		Order("follows.created_at ASC, follows.id ASC").
		Scopes(pagination.Scope(p)).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// all 执行查询并返回完整结果集，供用户详情接口内嵌关注列表使用。
func (q *paginatedUserQuery) all() ([]User, error) {
	var users []User
	err := database.DB.Model(&User{}).
		Joins(q.join).
		Where(q.where, q.arg).
		Order("follows.created_at ASC, follows.id ASC").
		Find(&users).Error
	return users, err
}

// CountFollowers 返回关注userID的用户数。
func CountFollowers(userID string) (int64, error) {
	var count int64
	err := database.DB.Table("follows").Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

// CountFollowing 返回userID关注的用户数。
func CountFollowing(userID string) (int64, error) {
	var count int64
	err := database.DB.Table("follows").Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// destroyCascade 在单个事务中删除用户及其全部从属数据:
// 该用户的睡眠记录，以及他作为任意一端的关注边。
func destroyCascade(id string) error {
	tx := database.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("无法开始数据库事务: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("DELETE FROM sleep_records WHERE user_id = ?", id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("无法删除用户的睡眠记录: %w", err)
	}
	if err := tx.Exec("DELETE FROM follows WHERE follower_id = ? OR following_id = ?", id, id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("无法删除用户的关注边: %w", err)
	}
	if err := tx.Where("id = ?", id).Delete(&User{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("无法删除用户: %w", err)
	}

	return tx.Commit().Error
}
