package book

import (
	apperrors "github.com/readieg/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrInvalidBookID ID不是合法的存储主键
	ErrInvalidBookID = apperrors.New(apperrors.ErrCodeInvalidID, "Invalid id")

	// 列表查询参数错误
	ErrInvalidMinRating = apperrors.Invalid("Invalid minRating")
	ErrInvalidYearRange = apperrors.Invalid("Invalid yearFrom/yearTo")
	ErrInvalidLimit     = apperrors.Invalid("Invalid limit (1..200)")
	ErrInvalidPage      = apperrors.Invalid("Invalid page")

	// 创建/更新请求体错误
	ErrMissingRequired  = apperrors.Invalid("Missing required fields: title, author")
	ErrTitleTooShort    = apperrors.Invalid("Title/author too short")
	ErrInvalidYear      = apperrors.Invalid("Invalid year")
	ErrInvalidRating    = apperrors.Invalid("Invalid rating (0..5)")
	ErrInvalidPages     = apperrors.Invalid("Invalid pages")
	ErrInvalidSeriesNum = apperrors.Invalid("Invalid seriesNumber")
)
