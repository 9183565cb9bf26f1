package user

import (
	"strings"
	"time"
)

// Role 角色（只有两级）
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole 只接受字面量 user / admin
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. PasswordHash是bcrypt哈希，任何对外输出都必须经过View()
// 2. Email统一小写存储，唯一性由存储层唯一索引保证
// 3. 领域实体不依赖bson/gorm tag（由persistence层映射）
type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(name, email, hashedPassword string, role Role, now time.Time) *User {
	return &User{
		Name:         name,
		Email:        NormalizeEmail(email),
		Role:         role,
		PasswordHash: hashedPassword,
		CreatedAt:    now,
	}
}

// EffectiveRole 历史数据可能没有role字段，缺省视为普通用户
func (u *User) EffectiveRole() Role {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.EffectiveRole() == RoleAdmin
}

// View 脱敏后的用户视图（不含密码哈希）
type View struct {
	ID        string    `json:"id" example:"665f1c2e9b1d8a0012345678"`
	Name      string    `json:"name" example:"Admin"`
	Email     string    `json:"email" example:"admin@example.com"`
	Role      Role      `json:"role" example:"admin"`
	CreatedAt time.Time `json:"createdAt"`
}

// View 转换为脱敏视图
func (u *User) View() View {
	return View{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.EffectiveRole(),
		CreatedAt: u.CreatedAt,
	}
}

// NormalizeEmail 去首尾空白并转小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
