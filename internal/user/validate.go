package user

import (
	"strings"
)

// validate 在持久化之前同步执行user的字段级校验，
// 返回人类可读的违规信息列表。excludeID用于更新场景下跳过自身的唯一性冲突。
func validate(u *User, excludeID string) ([]string, error) {
	var errs []string

	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, "Name can't be blank")
		return errs, nil
	}

	taken, err := nameTaken(u.Name, excludeID)
	if err != nil {
		return nil, err
	}
	if taken {
		errs = append(errs, "Name has already been taken")
	}
	return errs, nil
}
