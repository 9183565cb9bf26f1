package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readieg/library/internal/application/auth"
	"github.com/readieg/library/internal/domain/session"
	"github.com/readieg/library/internal/domain/user"
	"github.com/readieg/library/internal/infrastructure/config"
	"github.com/readieg/library/internal/infrastructure/persistence/redis"
	"github.com/readieg/library/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUsers 只实现FindByID
type fakeUsers struct {
	user.Repository
	users map[string]*user.User
	calls int
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	f.calls++
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

type testEnv struct {
	router   *gin.Engine
	sessions *redis.SessionStore
	users    *fakeUsers
	tokens   *jwt.Manager
	mr       *miniredis.Miniredis
}

const cookieName = "library.sid"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := redis.NewSessionStore(client)
	users := &fakeUsers{users: map[string]*user.User{
		"u1": {ID: "u1", Name: "Reader", Email: "reader@example.com", Role: user.RoleUser},
		"a1": {ID: "a1", Name: "Admin", Email: "admin@example.com", Role: user.RoleAdmin},
	}}
	tokens := jwt.NewManager("test-secret", time.Hour)

	sm := NewSessionMiddleware(tokens, sessions, config.SessionConfig{CookieName: cookieName})
	am := NewAuthMiddleware(auth.NewChain(users, sessions))

	r := gin.New()
	r.Use(RequestLogger(), sm.Load())

	r.GET("/open", am.AttachUser(), func(c *gin.Context) {
		body := gin.H{"authenticated": GetSession(c).Authenticated()}
		if u := GetUser(c); u != nil {
			body["user"] = u.ID
		}
		c.JSON(http.StatusOK, body)
	})
	r.GET("/private", am.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetSession(c).UserID})
	})
	r.GET("/admin", am.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/login/:id", func(c *gin.Context) {
		s, err := sessions.Create(c.Request.Context(), c.Param("id"), user.Role(c.Query("role")), time.Hour)
		require.NoError(t, err)
		require.NoError(t, sm.Issue(c, s))
		c.JSON(http.StatusOK, gin.H{"sid": s.ID})
	})
	r.POST("/logout", func(c *gin.Context) {
		require.NoError(t, sm.Logout(c))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return &testEnv{router: r, sessions: sessions, users: users, tokens: tokens, mr: mr}
}

// login 创建会话并通过Issue签发Cookie
func (e *testEnv) login(t *testing.T, userID string, role user.Role) (*http.Cookie, session.Session) {
	t.Helper()
	w := e.do(http.MethodPost, "/login/"+userID+"?role="+string(role), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SID string `json:"sid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	s, err := e.sessions.Get(context.Background(), body.SID)
	require.NoError(t, err)
	require.NotNil(t, s)

	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c, *s
		}
	}
	t.Fatal("响应中没有会话Cookie")
	return nil, session.Session{}
}

func (e *testEnv) do(method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestRequestIDHeader(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodGet, "/open", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/private", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", errorBody(t, w))

	cookie, _ := env.login(t, "u1", user.RoleUser)
	w = env.do(http.MethodGet, "/private", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, env.users.calls)
}

func TestIssueCookie(t *testing.T) {
	env := newTestEnv(t)
	cookie, s := env.login(t, "u1", user.RoleUser)

	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)

	sid, err := env.tokens.Parse(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, s.ID, sid)
}

func TestForgedCookieIsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/open", &http.Cookie{Name: cookieName, Value: "forged"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=;")
}

func TestAttachUser(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.login(t, "u1", user.RoleUser)

	w := env.do(http.MethodGet, "/open", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true,"user":"u1"}`, w.Body.String())
}

func TestAttachUserRevokesUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	cookie, s := env.login(t, "ghost", user.RoleUser)

	w := env.do(http.MethodGet, "/open", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	got, err := env.sessions.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRequireAdmin(t *testing.T) {
	t.Run("匿名401", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodGet, "/admin", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("普通用户403", func(t *testing.T) {
		env := newTestEnv(t)
		cookie, _ := env.login(t, "u1", user.RoleUser)
		w := env.do(http.MethodGet, "/admin", cookie)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Forbidden", errorBody(t, w))
	})

	t.Run("缓存角色命中不访问用户存储", func(t *testing.T) {
		env := newTestEnv(t)
		cookie, _ := env.login(t, "a1", user.RoleAdmin)
		w := env.do(http.MethodGet, "/admin", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, env.users.calls)
	})

	t.Run("被提升为管理员后刷新缓存", func(t *testing.T) {
		env := newTestEnv(t)
		cookie, s := env.login(t, "a1", user.RoleUser)

		w := env.do(http.MethodGet, "/admin", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, env.users.calls)

		got, err := env.sessions.Get(context.Background(), s.ID)
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, got.Role)

		// 第二次走快速路径
		w = env.do(http.MethodGet, "/admin", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, env.users.calls)
	})

	t.Run("缓存角色为admin时直接放行", func(t *testing.T) {
		env := newTestEnv(t)
		cookie, _ := env.login(t, "u1", user.RoleAdmin)
		w := env.do(http.MethodGet, "/admin", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, env.users.calls)
	})
}

func TestDemotedAdmin(t *testing.T) {
	env := newTestEnv(t)
	cookie, s := env.login(t, "a1", user.RoleAdmin)
	env.users.users["a1"].Role = user.RoleUser

	// 缓存仍是admin，快速路径放行
	w := env.do(http.MethodGet, "/admin", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, env.users.calls)

	// 任意加载用户的请求刷新缓存角色
	w = env.do(http.MethodGet, "/open", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true,"user":"a1"}`, w.Body.String())

	got, err := env.sessions.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, got.Role)

	w = env.do(http.MethodGet, "/admin", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnknownUserOnAdminRoute(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.login(t, "ghost", user.RoleUser)

	w := env.do(http.MethodGet, "/admin", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/open", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = env.do(http.MethodGet, "/private", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.login(t, "u1", user.RoleUser)
	env.mr.Close()

	w := env.do(http.MethodGet, "/open", cookie)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	cookie, s := env.login(t, "u1", user.RoleUser)

	w := env.do(http.MethodPost, "/logout", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=;")

	got, err := env.sessions.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	w = env.do(http.MethodGet, "/private", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
