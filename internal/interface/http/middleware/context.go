package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/readieg/library/internal/domain/session"
	"github.com/readieg/library/internal/domain/user"
)

// Context中的key
const (
	ctxSession   = "session"
	ctxUser      = "user"
	ctxRequestID = "request_id"
)

// SetSession 写入当前请求的会话快照
func SetSession(c *gin.Context, s session.Session) {
	c.Set(ctxSession, s)
}

// GetSession 当前请求的会话，没有时返回匿名会话
func GetSession(c *gin.Context) session.Session {
	if v, ok := c.Get(ctxSession); ok {
		if s, ok := v.(session.Session); ok {
			return s
		}
	}
	return session.Anonymous()
}

func setUser(c *gin.Context, u *user.User) {
	c.Set(ctxUser, u)
}

// GetUser AttachUser加载的用户；未加载或匿名时返回nil
// 注意：RequireRole走快速路径时不会加载用户
func GetUser(c *gin.Context) *user.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*user.User); ok {
			return u
		}
	}
	return nil
}

// GetRequestID 当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
