package dto

import "github.com/readieg/library/internal/domain/user"

// MeResponse 当前会话信息
// 匿名时 {"authenticated": false, "user": null}
type MeResponse struct {
	Authenticated bool       `json:"authenticated" example:"true"`
	User          *user.View `json:"user"`
}

// SetRoleRequest 修改角色请求
type SetRoleRequest struct {
	Role string `json:"role" example:"admin" enums:"user,admin"`
}
