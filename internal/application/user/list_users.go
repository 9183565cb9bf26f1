package user

import (
	"context"

	"github.com/readieg/library/internal/domain/user"
)

// ListUsersUseCase 管理端用户列表
// 设计说明：
// 1. 领域实体 → 脱敏视图（View不含密码哈希）
// 2. 没有用户时返回空数组
type ListUsersUseCase struct {
	userService user.Service
}

// NewListUsersUseCase 创建用例
func NewListUsersUseCase(userService user.Service) *ListUsersUseCase {
	return &ListUsersUseCase{userService: userService}
}

// Execute 按创建时间倒序，最多200条
func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]user.View, error) {
	users, err := uc.userService.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]user.View, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	return views, nil
}
