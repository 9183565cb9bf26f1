package user

import (
	apperrors "github.com/readieg/library/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.ErrUserNotFound

	// ErrInvalidUserID ID不是合法的存储主键
	ErrInvalidUserID = apperrors.New(apperrors.ErrCodeInvalidID, "Invalid user id")

	// ErrInvalidRole 角色不是 user / admin
	ErrInvalidRole = apperrors.Invalid("Invalid role")

	// ErrEmailDuplicate 邮箱已存在
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "Email already exists")
)
