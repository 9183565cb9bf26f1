package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/readieg/library/internal/application/auth"
	"github.com/readieg/library/internal/domain/session"
	"github.com/readieg/library/internal/domain/user"
	"github.com/readieg/library/pkg/response"
)

// AuthMiddleware 鉴权链的gin适配
// 使用方式：
//
//	api.GET("/auth/me", authMiddleware.AttachUser(), handler.Me)
//	admin := api.Group("/admin", authMiddleware.RequireAdmin())
//
// 必须挂在SessionMiddleware.Load之后
type AuthMiddleware struct {
	chain *auth.Chain
}

// NewAuthMiddleware 创建鉴权中间件
func NewAuthMiddleware(chain *auth.Chain) *AuthMiddleware {
	return &AuthMiddleware{chain: chain}
}

// RequireAuth 要求会话中有用户标识（不访问存储）
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.chain.Authenticate(GetSession(c)); err != nil {
			response.Error(c, err)
			return
		}
		c.Next()
	}
}

// AttachUser 加载当前用户（可选登录）
// 标识失效时会话已被销毁，本次请求按匿名继续
func (m *AuthMiddleware) AttachUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		u, err := m.chain.Hydrate(c.Request.Context(), s)
		if err != nil {
			response.Error(c, err)
			return
		}

		if u == nil {
			if s.Authenticated() {
				SetSession(c, session.Anonymous())
			}
			c.Next()
			return
		}

		setUser(c, u)
		SetSession(c, s.WithRole(u.EffectiveRole()))
		c.Next()
	}
}

// RequireRole 要求指定角色
// 1. 没有用户标识 → 401
// 2. 缓存角色一致 → 直接放行（不访问用户存储）
// 3. 否则加载用户：无法解析 → 401，角色不符 → 403
func (m *AuthMiddleware) RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		u, err := m.chain.Authorize(c.Request.Context(), s, role)
		if err != nil {
			response.Error(c, err)
			return
		}
		if u != nil {
			setUser(c, u)
			SetSession(c, s.WithRole(u.EffectiveRole()))
		}
		c.Next()
	}
}

// RequireAdmin 等价于RequireRole(user.RoleAdmin)
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(user.RoleAdmin)
}
