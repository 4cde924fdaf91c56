package follow

import (
	"errors"

	"github.com/SlpAus/good-night-backend/internal/user"
	"gorm.io/gorm"
)

// validate 在持久化之前同步执行关注边的字段级校验。
// 注意与user服务FollowUser的不对称性: 经由这里创建的自关注是校验失败，
// 而FollowUser路径上的自关注是静默的软失败。
func validate(f *Follow) ([]string, error) {
	var errs []string

	if f.FollowerID == f.FollowingID {
		errs = append(errs, "Following cannot follow yourself")
		return errs, nil
	}

	if _, err := user.GetByID(f.FollowerID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		errs = append(errs, "Follower must exist")
	}
	if _, err := user.GetByID(f.FollowingID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		errs = append(errs, "Following must exist")
	}
	if len(errs) > 0 {
		return errs, nil
	}

	exists, err := edgeExists(f.FollowerID, f.FollowingID)
	if err != nil {
		return nil, err
	}
	if exists {
		errs = append(errs, "Follower has already been taken")
	}
	return errs, nil
}
