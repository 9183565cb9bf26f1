// Package session 会话上下文
//
// 设计说明：
// 1. Session是不可变值，每个请求解析一次；需要修改时通过Store的显式操作完成
// 2. Role只是缓存，权威角色永远以用户存储为准（见application/auth）
// 3. Store由外部会话层实现（Redis），鉴权链只调用Get / Refresh / Invalidate
package session

import (
	"context"
	"time"

	"github.com/readieg/library/internal/domain/user"
)

// Session 会话快照
type Session struct {
	ID        string
	UserID    string
	Role      user.Role // 缓存的角色，可能过期
	ExpiresAt time.Time
}

// Anonymous 没有会话的请求
func Anonymous() Session {
	return Session{}
}

// Authenticated 是否携带用户标识
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// Exists 是否对应一个服务端会话
func (s Session) Exists() bool {
	return s.ID != ""
}

// WithRole 返回替换了角色缓存的新值
func (s Session) WithRole(role user.Role) Session {
	s.Role = role
	return s
}

// Store 会话存储
type Store interface {
	// Create 为用户创建新会话
	Create(ctx context.Context, userID string, role user.Role, ttl time.Duration) (Session, error)

	// Get 读取会话；不存在或已过期返回(nil, nil)
	Get(ctx context.Context, id string) (*Session, error)

	// Refresh 更新缓存角色，不改变过期时间；会话已不存在时什么都不做
	Refresh(ctx context.Context, id string, role user.Role) error

	// Invalidate 销毁会话（幂等）
	Invalidate(ctx context.Context, id string) error
}
