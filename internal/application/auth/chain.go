// Package auth 会话鉴权链
//
// 三个阶段，由HTTP中间件按路由组合：
//
//	Authenticate  会话中有用户标识？没有 → 401，不访问存储
//	Hydrate       按用户标识加载用户；标识失效 → 销毁会话并按匿名继续
//	Authorize     要求特定角色；缓存角色命中直接放行，否则加载一次用户再判断
//
// 不变量：每个请求最多一次用户存储往返；会话里的角色只是缓存，用户存储才是权威
package auth

import (
	"context"
	"errors"

	"github.com/readieg/library/internal/domain/session"
	"github.com/readieg/library/internal/domain/user"
	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/metrics"
)

// Chain 鉴权链
type Chain struct {
	users    user.Repository
	sessions session.Store
}

// NewChain 创建鉴权链
func NewChain(users user.Repository, sessions session.Store) *Chain {
	return &Chain{users: users, sessions: sessions}
}

// Authenticate 只检查会话是否携带用户标识
func (c *Chain) Authenticate(s session.Session) error {
	if !s.Authenticated() {
		metrics.RecordAuthDecision(metrics.DecisionNoAuth)
		return apperrors.ErrUnauthorized
	}
	return nil
}

// Hydrate 加载会话对应的用户
//
// 返回值：
// - (user, nil)  成功；缓存角色与存储不一致时顺带刷新会话
// - (nil, nil)   匿名，或标识已失效（此时会话已被销毁）
// - (nil, err)   用户存储故障
func (c *Chain) Hydrate(ctx context.Context, s session.Session) (*user.User, error) {
	if !s.Authenticated() {
		return nil, nil
	}

	u, err := c.users.FindByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, user.ErrInvalidUserID) || errors.Is(err, user.ErrUserNotFound) {
			c.revoke(ctx, s)
			return nil, nil
		}
		return nil, err
	}

	if role := u.EffectiveRole(); s.Exists() && s.Role != role {
		// 角色缓存只影响快速路径，刷新失败不影响本次请求
		if err := c.sessions.Refresh(ctx, s.ID, role); err != nil {
			logger.Warn().Err(err).Str("session_id", s.ID).Msg("刷新会话角色失败")
		}
	}

	return u, nil
}

// Authorize 要求会话用户具有指定角色
//
// 1. 没有用户标识 → 401，不加载用户
// 2. 缓存角色等于要求的角色 → 放行，返回nil用户（没有访问存储）
// 3. 否则加载用户：无法解析 → 401；角色不符 → 403；符合 → 放行并返回用户
func (c *Chain) Authorize(ctx context.Context, s session.Session, required user.Role) (*user.User, error) {
	if err := c.Authenticate(s); err != nil {
		return nil, err
	}

	if s.Role == required {
		metrics.RecordAuthDecision(metrics.DecisionFastPath)
		return nil, nil
	}

	u, err := c.Hydrate(ctx, s)
	if err != nil {
		return nil, err
	}
	if u == nil {
		metrics.RecordAuthDecision(metrics.DecisionNoAuth)
		return nil, apperrors.ErrUnauthorized
	}
	if u.EffectiveRole() != required {
		metrics.RecordAuthDecision(metrics.DecisionDenied)
		return nil, apperrors.ErrForbidden
	}

	metrics.RecordAuthDecision(metrics.DecisionHydrated)
	return u, nil
}

// revoke 销毁标识失效的会话
func (c *Chain) revoke(ctx context.Context, s session.Session) {
	metrics.RecordAuthDecision(metrics.DecisionRevoked)
	if !s.Exists() {
		return
	}
	if err := c.sessions.Invalidate(ctx, s.ID); err != nil {
		logger.Warn().Err(err).Str("session_id", s.ID).Msg("销毁会话失败")
	}
}
