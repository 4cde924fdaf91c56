package user

import (
	"errors"
	"fmt"

	"github.com/SlpAus/good-night-backend/internal/platform/database"
	"github.com/SlpAus/good-night-backend/pkg/pagination"
	"github.com/SlpAus/good-night-backend/pkg/result"
	"gorm.io/gorm"
)

// NotFoundMessage 生成用户不存在时的统一提示。
func NotFoundMessage(id string) string {
	return fmt.Sprintf("Couldn't find User with 'id'=%s", id)
}

// FindAll 返回一页用户列表和分页元数据。
func FindAll(p pagination.Params) *result.ServiceResult {
	users, total, err := listUsers(p)
	if err != nil {
		return result.Failed("Failed to list users")
	}
	return result.OKWithMeta(users, pagination.NewMeta(total, p))
}

// FindByID 按id查找单个用户。
func FindByID(id string) *result.ServiceResult {
	u, err := GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to find user")
	}
	return result.OK(u, "")
}

// Create 校验并创建一个新用户。
func Create(name string) *result.ServiceResult {
	u := &User{Name: name}

	errs, err := validate(u, "")
	if err != nil {
		return result.Failed("Failed to create user")
	}
	if len(errs) > 0 {
		return result.Invalid("Failed to create user", errs)
	}

	if err := database.DB.Create(u).Error; err != nil {
		// 并发创建同名用户时，唯一索引让后到者在这里失败
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return result.Invalid("Failed to create user", []string{"Name has already been taken"})
		}
		return result.Failed("Failed to create user")
	}
	return result.OK(u, "User created successfully")
}

// Update 更新用户名。
func Update(id string, name string) *result.ServiceResult {
	u, err := GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to update user")
	}

	u.Name = name
	errs, err := validate(u, u.ID)
	if err != nil {
		return result.Failed("Failed to update user")
	}
	if len(errs) > 0 {
		return result.Invalid("Failed to update user", errs)
	}

	if err := database.DB.Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return result.Invalid("Failed to update user", []string{"Name has already been taken"})
		}
		return result.Failed("Failed to update user")
	}
	return result.OK(u, "User updated successfully")
}

// Destroy 删除用户。删除会级联清除其全部睡眠记录，
// 以及他作为follower或following一端的所有关注边。
func Destroy(id string) *result.ServiceResult {
	if _, err := GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to delete user")
	}

	if err := destroyCascade(id); err != nil {
		return result.Failed("Failed to delete user")
	}
	return result.OK(nil, "User deleted successfully")
}

// GetFollowers 返回关注该用户的用户分页列表。
func GetFollowers(id string, p pagination.Params) *result.ServiceResult {
	if _, err := GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to list followers")
	}

	users, total, err := followersQuery(id).page(p)
	if err != nil {
		return result.Failed("Failed to list followers")
	}
	return result.OKWithMeta(users, pagination.NewMeta(total, p))
}

// GetFollowing 返回该用户关注的用户分页列表。
func GetFollowing(id string, p pagination.Params) *result.ServiceResult {
	if _, err := GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result.NotFound(NotFoundMessage(id))
		}
		return result.Failed("Failed to list following")
	}

	users, total, err := followingQuery(id).page(p)
	if err != nil {
		return result.Failed("Failed to list following")
	}
	return result.OKWithMeta(users, pagination.NewMeta(total, p))
}

// AllFollowers 返回完整的粉丝列表，供详情接口内嵌。
func AllFollowers(id string) ([]User, error) {
	return followersQuery(id).all()
}

// AllFollowing 返回完整的关注列表，供详情接口内嵌。
func AllFollowing(id string) ([]User, error) {
	return followingQuery(id).all()
}
