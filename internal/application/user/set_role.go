package user

import (
	"context"

	"github.com/readieg/library/internal/domain/user"
	"github.com/readieg/library/pkg/logger"
)

// SetRoleUseCase 管理员修改用户角色
// 会话里缓存的旧角色不在这里处理：鉴权链下次加载用户时发现不一致会刷新
type SetRoleUseCase struct {
	userService user.Service
}

// NewSetRoleUseCase 创建用例
func NewSetRoleUseCase(userService user.Service) *SetRoleUseCase {
	return &SetRoleUseCase{userService: userService}
}

// SetRoleRequest 请求体
type SetRoleRequest struct {
	Role string `json:"role" example:"admin"`
}

// Execute 修改角色
// 错误：非法ID → ErrInvalidUserID；非法角色 → ErrInvalidRole；不存在 → ErrUserNotFound
func (uc *SetRoleUseCase) Execute(ctx context.Context, actorID, id string, req SetRoleRequest) error {
	if err := uc.userService.SetRole(ctx, id, req.Role); err != nil {
		return err
	}

	logger.Info().
		Str("actor_id", actorID).
		Str("user_id", id).
		Str("role", req.Role).
		Msg("用户角色已修改")
	return nil
}
