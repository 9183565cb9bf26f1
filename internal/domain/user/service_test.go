package user

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memRepo struct {
	mu     sync.Mutex
	users  map[string]*User
	seq    int
	failOn string
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*User)}
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "create" {
		return errors.New("write failed")
	}
	for _, e := range r.users {
		if e.Email == u.Email {
			return ErrEmailDuplicate
		}
	}
	r.seq++
	u.ID = "u" + strconv.Itoa(r.seq)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == "find" {
		return nil, errors.New("timeout")
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memRepo) List(_ context.Context, limit int) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) SetRole(_ context.Context, id string, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *memRepo) ValidID(id string) bool { return id != "bad" }

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("未配置时跳过", func(t *testing.T) {
		svc := NewService(newMemRepo())
		res, err := svc.EnsureAdmin(ctx, Seed{Email: "  ", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, BootstrapSkipped, res)

		res, err = svc.EnsureAdmin(ctx, Seed{Email: "a@b.c"})
		require.NoError(t, err)
		assert.Equal(t, BootstrapSkipped, res)
	})

	t.Run("创建后再次执行不变", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)

		res, err := svc.EnsureAdmin(ctx, Seed{Email: " Admin@Example.COM ", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, BootstrapCreated, res)

		u, err := repo.FindByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Admin", u.Name)
		assert.Equal(t, RoleAdmin, u.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")))

		res, err = svc.EnsureAdmin(ctx, Seed{Email: "admin@example.com", Password: "other"})
		require.NoError(t, err)
		assert.Equal(t, BootstrapUnchanged, res)
	})

	t.Run("已有普通用户被提升", func(t *testing.T) {
		repo := newMemRepo()
		require.NoError(t, repo.Create(ctx, NewUser("Ann", "ann@example.com", "h", "", time.Now())))
		svc := NewService(repo)

		res, err := svc.EnsureAdmin(ctx, Seed{Email: "ANN@example.com", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, BootstrapPromoted, res)

		u, _ := repo.FindByEmail(ctx, "ann@example.com")
		assert.True(t, u.IsAdmin())
		assert.Equal(t, "Ann", u.Name)
	})

	t.Run("存储错误返回给调用方", func(t *testing.T) {
		repo := newMemRepo()
		repo.failOn = "find"
		_, err := NewService(repo).EnsureAdmin(ctx, Seed{Email: "a@b.c", Password: "x"})
		assert.EqualError(t, err, "timeout")

		repo.failOn = "create"
		_, err = NewService(repo).EnsureAdmin(ctx, Seed{Email: "a@b.c", Password: "x"})
		assert.EqualError(t, err, "write failed")
	})
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	require.NoError(t, repo.Create(ctx, NewUser("Ann", "ann@example.com", "h", RoleUser, time.Now())))
	svc := NewService(repo)

	assert.ErrorIs(t, svc.SetRole(ctx, "u1", "root"), ErrInvalidRole)
	assert.ErrorIs(t, svc.SetRole(ctx, "u1", "Admin"), ErrInvalidRole)
	assert.ErrorIs(t, svc.SetRole(ctx, "u9", "admin"), ErrUserNotFound)

	// 先校验ID再校验角色
	assert.ErrorIs(t, svc.SetRole(ctx, "bad", "root"), ErrInvalidUserID)
	assert.ErrorIs(t, svc.SetRole(ctx, "bad", "admin"), ErrInvalidUserID)

	require.NoError(t, svc.SetRole(ctx, "u1", "admin"))
	u, _ := repo.FindByID(ctx, "u1")
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		email := "u" + strconv.Itoa(i) + "@example.com"
		require.NoError(t, repo.Create(ctx, NewUser("n", email, "h", RoleUser, base.Add(time.Duration(i)*time.Hour))))
	}

	users, err := NewService(repo).List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "u2@example.com", users[0].Email)
}

func TestViewIsSanitized(t *testing.T) {
	u := &User{ID: "1", Name: "Ann", Email: "ann@example.com", PasswordHash: "$2a$10$xyz"}
	v := u.View()
	assert.Equal(t, RoleUser, v.Role, "缺省角色为user")
	assert.Equal(t, "ann@example.com", v.Email)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	_, ok = ParseRole("")
	assert.False(t, ok)
}
