package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/readieg/library/internal/domain/session"
	"github.com/readieg/library/internal/domain/user"
	apperrors "github.com/readieg/library/pkg/errors"
)

const (
	sessionKeyPrefix = "session:"
	fieldUserID      = "user_id"
	fieldRole        = "role"
)

// refreshScript 只在会话仍存在时更新role，避免给已过期的key写入一个没有TTL的新hash
var refreshScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
end
return 0
`)

// SessionStore 会话存储（实现session.Store）
// 设计说明：
// 1. Key设计：session:{session_id}，Hash字段 user_id / role
// 2. 过期由Redis TTL负责，过期后自动删除，无需手动清理
// 3. Refresh不改变TTL，Invalidate幂等
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

var _ session.Store = (*SessionStore)(nil)

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create 创建会话
// 学习要点：HSet与Expire放在同一个事务管道里，不会留下没有TTL的会话
func (s *SessionStore) Create(ctx context.Context, userID string, role user.Role, ttl time.Duration) (session.Session, error) {
	id := uuid.NewString()
	key := sessionKey(id)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldUserID, userID, fieldRole, string(role))
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return session.Session{}, apperrors.Redis(err)
	}

	return session.Session{
		ID:        id,
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Get 读取会话
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	if id == "" {
		return nil, nil
	}
	key := sessionKey(id)

	var (
		fields *redis.MapStringStringCmd
		ttl    *redis.DurationCmd
	)
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		fields = pipe.HGetAll(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return nil, apperrors.Redis(err)
	}

	data := fields.Val()
	if len(data) == 0 {
		return nil, nil
	}

	sess := &session.Session{
		ID:     id,
		UserID: data[fieldUserID],
		Role:   user.Role(data[fieldRole]),
	}
	if d := ttl.Val(); d > 0 {
		sess.ExpiresAt = time.Now().Add(d)
	}
	return sess, nil
}

// Refresh 更新缓存角色
func (s *SessionStore) Refresh(ctx context.Context, id string, role user.Role) error {
	if id == "" {
		return nil
	}
	if err := refreshScript.Run(ctx, s.client, []string{sessionKey(id)}, fieldRole, string(role)).Err(); err != nil {
		return apperrors.Redis(err)
	}
	return nil
}

// Invalidate 销毁会话
func (s *SessionStore) Invalidate(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return apperrors.Redis(err)
	}
	return nil
}
