package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/readieg/library/internal/domain/user"
	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/metrics"
)

// userRepository 用户仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如邮箱重复），转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 学习要点：邮箱唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	defer metrics.ObserveStoreOp("mysql", "user_create", time.Now())

	model := &UserModel{
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.EffectiveRole()),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Database(err)
	}

	u.ID = formatID(model.ID)
	u.CreatedAt = model.CreatedAt
	return nil
}

func (r *userRepository) ValidID(id string) bool {
	_, ok := parseID(id)
	return ok
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	pk, ok := parseID(id)
	if !ok {
		return nil, user.ErrInvalidUserID
	}
	defer metrics.ObserveStoreOp("mysql", "user_get", time.Now())

	var model UserModel
	if err := r.db.WithContext(ctx).First(&model, pk).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toUserEntity(&model), nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	defer metrics.ObserveStoreOp("mysql", "user_get_by_email", time.Now())

	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return toUserEntity(&model), nil
}

// List 按创建时间倒序，不查询密码哈希列
func (r *userRepository) List(ctx context.Context, limit int) ([]*user.User, error) {
	defer metrics.ObserveStoreOp("mysql", "user_list", time.Now())

	var models []UserModel
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "role", "created_at").
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Database(err)
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

// SetRole 修改角色
func (r *userRepository) SetRole(ctx context.Context, id string, role user.Role) error {
	pk, ok := parseID(id)
	if !ok {
		return user.ErrInvalidUserID
	}
	defer metrics.ObserveStoreOp("mysql", "user_set_role", time.Now())

	result := r.db.WithContext(ctx).
		Model(&UserModel{ID: pk}).
		Update("role", string(role))
	if result.Error != nil {
		return apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.ErrUserNotFound
	}
	return apperrors.Database(err)
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:           formatID(m.ID),
		Name:         m.Name,
		Email:        m.Email,
		Role:         user.Role(m.Role),
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
