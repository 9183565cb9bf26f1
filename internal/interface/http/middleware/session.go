package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readieg/library/internal/domain/session"
	"github.com/readieg/library/internal/infrastructure/config"
	"github.com/readieg/library/pkg/jwt"
	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/response"
)

// SessionMiddleware 会话加载
// 设计说明：
// 1. Cookie中是签名后的会话ID，签名无效或会话已不存在 → 匿名，并清除Cookie
// 2. 只把会话快照放进Context，是否需要登录由后续的鉴权链决定
// 3. 会话存储故障返回500，不降级为匿名
type SessionMiddleware struct {
	tokens *jwt.Manager
	store  session.Store
	cfg    config.SessionConfig
}

// NewSessionMiddleware 创建会话中间件
func NewSessionMiddleware(tokens *jwt.Manager, store session.Store, cfg config.SessionConfig) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, store: store, cfg: cfg}
}

// Load 解析会话，所有路由都应挂载
func (m *SessionMiddleware) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		SetSession(c, session.Anonymous())

		token, err := c.Cookie(m.cfg.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sid, err := m.tokens.Parse(token)
		if err != nil {
			logger.Debug().Err(err).Msg("会话令牌无效")
			m.ClearCookie(c)
			c.Next()
			return
		}

		s, err := m.store.Get(c.Request.Context(), sid)
		if err != nil {
			response.Error(c, err)
			return
		}
		if s == nil {
			m.ClearCookie(c)
			c.Next()
			return
		}

		SetSession(c, *s)
		c.Next()
	}
}

// Issue 为已创建的会话写Cookie
func (m *SessionMiddleware) Issue(c *gin.Context, s session.Session) error {
	token, err := m.tokens.Sign(s.ID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, token, int(m.tokens.TTL().Seconds()), "/", "", m.cfg.Secure, true)
	return nil
}

// ClearCookie 删除会话Cookie
func (m *SessionMiddleware) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, "", -1, "/", "", m.cfg.Secure, true)
}

// Logout 销毁当前会话（幂等）并清除Cookie
func (m *SessionMiddleware) Logout(c *gin.Context) error {
	s := GetSession(c)
	if s.Exists() {
		if err := m.store.Invalidate(c.Request.Context(), s.ID); err != nil {
			return err
		}
	}
	m.ClearCookie(c)
	SetSession(c, session.Anonymous())
	return nil
}
