package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/readieg/library/internal/domain/user"
	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/metrics"
)

// userDoc users集合的文档结构
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Role         string             `bson:"role"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// userRepository 用户仓储实现(MongoDB)
type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{col: db.Collection(UsersCollection)}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	defer metrics.ObserveStoreOp("mongo", "user_create", time.Now())

	doc := &userDoc{
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.ErrEmailDuplicate
		}
		return apperrors.Database(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return nil
}

func (r *userRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, user.ErrInvalidUserID
	}
	defer metrics.ObserveStoreOp("mongo", "user_get", time.Now())

	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	defer metrics.ObserveStoreOp("mongo", "user_get_by_email", time.Now())

	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.D) (*user.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Database(err)
	}
	return toUserEntity(&doc), nil
}

// List 按创建时间倒序，不读取密码哈希
func (r *userRepository) List(ctx context.Context, limit int) ([]*user.User, error) {
	defer metrics.ObserveStoreOp("mongo", "user_list", time.Now())

	opts := options.Find().
		SetProjection(bson.D{{Key: "passwordHash", Value: 0}}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperrors.Database(err)
	}

	users := make([]*user.User, len(docs))
	for i := range docs {
		users[i] = toUserEntity(&docs[i])
	}
	return users, nil
}

// SetRole 修改角色
func (r *userRepository) SetRole(ctx context.Context, id string, role user.Role) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.ErrInvalidUserID
	}
	defer metrics.ObserveStoreOp("mongo", "user_set_role", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: string(role)}}}},
	)
	if err != nil {
		return apperrors.Database(err)
	}
	if res.MatchedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toUserEntity(d *userDoc) *user.User {
	return &user.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Role:         user.Role(d.Role),
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}
