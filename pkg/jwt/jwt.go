package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/readieg/library/pkg/errors"
)

// Manager 会话令牌管理器
// 设计说明：
// 1. Cookie里只放签名后的会话ID(sid)，用户身份与角色都在服务端会话存储中
// 2. 令牌过期时间与会话TTL一致，服务端会话被销毁后令牌即使未过期也无效
// 3. 签名防止客户端伪造或枚举会话ID
type Manager struct {
	secret []byte        // HMAC签名密钥
	ttl    time.Duration // 令牌有效期
	issuer string
	now    func() time.Time
}

// NewManager 创建会话令牌管理器
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "library",
		now:    time.Now,
	}
}

// Claims 会话令牌Claims
// 学习要点：
// 1. 嵌入jwt.RegisteredClaims获取标准字段（exp、iat、nbf等）
// 2. 自定义字段只有SessionID
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// TTL 令牌有效期（写Cookie的Max-Age时使用）
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Sign 为会话ID签发令牌
func (m *Manager) Sign(sessionID string) (string, error) {
	if sessionID == "" {
		return "", apperrors.ErrInvalidToken
	}

	now := m.now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "Server error")
	}
	return signed, nil
}

// Parse 验证令牌并取出会话ID
// 学习要点：
// 1. 验证签名算法，拒绝alg=none等非HMAC算法
// 2. 验证过期时间（exp）与生效时间（nbf）
// 3. 所有失败统一返回ErrInvalidToken，调用方按匿名请求处理
func (m *Manager) Parse(tokenString string) (string, error) {
	if tokenString == "" {
		return "", apperrors.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.Wrap(err, apperrors.ErrInvalidToken.Message)
		}
		return "", apperrors.ErrInvalidToken
	}

	if !token.Valid || claims.SessionID == "" {
		return "", apperrors.ErrInvalidToken
	}
	return claims.SessionID, nil
}
