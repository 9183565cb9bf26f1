package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/{mongo,mysql}
// 3. 格式非法的ID返回ErrInvalidUserID，不存在返回ErrUserNotFound
type Repository interface {
	// Create 创建用户，成功后回填u.ID
	// 邮箱已存在返回ErrEmailDuplicate
	Create(ctx context.Context, u *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail 根据邮箱查找用户（调用方负责NormalizeEmail）
	FindByEmail(ctx context.Context, email string) (*User, error)

	// List 按创建时间倒序，最多limit条
	List(ctx context.Context, limit int) ([]*User, error)

	// SetRole 修改角色，以匹配行数判断存在性
	SetRole(ctx context.Context, id string, role Role) error

	// ValidID 判断id是否是合法的存储主键（不访问存储）
	ValidID(id string) bool
}
