package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是5位业务错误码，前3位就是HTTP状态码（40001 → 400）
// 2. Message是返回给调用方的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`  // 业务错误码
	Message string `json:"error"` // 用户友好的错误提示
	Err     error  `json:"-"`     // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，Wrap出来的新实例也能与预定义错误匹配
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// HTTPStatus 由错误码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Invalid 创建参数校验错误（400）
func Invalid(message string) *AppError {
	return New(ErrCodeInvalidParams, message)
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为StoreError，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Database 包装持久化层错误（500），对外统一提示"Server/database error"
func Database(err error) *AppError {
	return &AppError{
		Code:    ErrCodeDatabaseError,
		Message: ErrDatabaseError.Message,
		Err:     err,
	}
}

// Redis 包装会话存储错误（500）
func Redis(err error) *AppError {
	return &AppError{
		Code:    ErrCodeRedisError,
		Message: ErrRedisError.Message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：前3位 = HTTP状态码，后2位区分具体原因
// - 400xx: ValidationError（参数格式错误、范围越界）
// - 401xx: AuthenticationRequired
// - 403xx: AuthorizationDenied
// - 404xx: NotFound
// - 500xx: StoreError（数据库、Redis等持久化失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 认证授权错误
	ErrCodeUnauthorized = 40100 // 未登录
	ErrCodeInvalidToken = 40101 // 会话令牌无效
	ErrCodeForbidden    = 40300 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound     = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound = 40401 // 用户不存在
	ErrCodeBookNotFound = 40402 // 图书不存在

	// 参数错误（40000-40099）
	ErrCodeInvalidParams  = 40000 // 参数错误
	ErrCodeBindError      = 40001 // 参数绑定失败
	ErrCodeInvalidID      = 40002 // ID格式错误
	ErrCodeDuplicateEntry = 40009 // 重复记录(通用)
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Server/database error")
	ErrRedisError    = New(ErrCodeRedisError, "Session store error")

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "Unauthorized")
	ErrInvalidToken = New(ErrCodeInvalidToken, "Invalid session token")
	ErrForbidden    = New(ErrCodeForbidden, "Forbidden")

	// 资源不存在
	ErrNotFound     = New(ErrCodeNotFound, "Not found")
	ErrUserNotFound = New(ErrCodeUserNotFound, "User not found")
	ErrBookNotFound = New(ErrCodeBookNotFound, "Book not found")

	// 参数错误
	ErrBindError = New(ErrCodeBindError, "Invalid request body")
)

// =========================================
// 辅助函数
// =========================================

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Server error")
}
