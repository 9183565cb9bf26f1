package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ListLimit 管理端用户列表上限
const ListLimit = 200

// BcryptCost 管理员初始化密码的哈希强度
const BcryptCost = 10

// Seed 初始化管理员的外部配置
type Seed struct {
	Email    string
	Password string
	Name     string
}

// BootstrapResult EnsureAdmin的执行结果
type BootstrapResult string

const (
	BootstrapSkipped   BootstrapResult = "skipped"   // 未配置email或password
	BootstrapCreated   BootstrapResult = "created"   // 新建了管理员
	BootstrapPromoted  BootstrapResult = "promoted"  // 已有用户被提升为管理员
	BootstrapUnchanged BootstrapResult = "unchanged" // 已经是管理员
)

// Service 用户领域服务
// 设计说明：
// 1. 只包含身份管理（列表、改角色）和启动时的管理员初始化
// 2. 登录、注册不在本服务范围内
type Service interface {
	// List 脱敏前的用户列表（按创建时间倒序，最多200条）
	List(ctx context.Context) ([]*User, error)

	// SetRole 修改用户角色，role必须是 user / admin
	SetRole(ctx context.Context, id, role string) error

	// EnsureAdmin 幂等的管理员初始化，结果由调用方处理
	EnsureAdmin(ctx context.Context, seed Seed) (BootstrapResult, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx, ListLimit)
}

func (s *service) SetRole(ctx context.Context, id, role string) error {
	if !s.repo.ValidID(id) {
		return ErrInvalidUserID
	}
	r, ok := ParseRole(role)
	if !ok {
		return ErrInvalidRole
	}
	return s.repo.SetRole(ctx, id, r)
}

// EnsureAdmin 管理员初始化
// 业务流程：
// 1. email去空白转小写；email或password为空则跳过
// 2. 邮箱已存在：不是管理员就提升，是管理员就不动
// 3. 邮箱不存在：bcrypt哈希密码后创建管理员（name缺省为"Admin"）
func (s *service) EnsureAdmin(ctx context.Context, seed Seed) (BootstrapResult, error) {
	email := NormalizeEmail(seed.Email)
	if email == "" || seed.Password == "" {
		return BootstrapSkipped, nil
	}

	name := strings.TrimSpace(seed.Name)
	if name == "" {
		name = "Admin"
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return BootstrapUnchanged, nil
		}
		if err := s.repo.SetRole(ctx, existing.ID, RoleAdmin); err != nil {
			return "", err
		}
		return BootstrapPromoted, nil
	case !errors.Is(err, ErrUserNotFound):
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), BcryptCost)
	if err != nil {
		return "", err
	}

	u := NewUser(name, email, string(hash), RoleAdmin, s.now().UTC())
	if err := s.repo.Create(ctx, u); err != nil {
		return "", err
	}
	return BootstrapCreated, nil
}
