package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/logger"
)

// ErrorBody 统一错误响应结构
// 设计说明：所有错误都只返回 {"error": "..."}，HTTP状态码表达错误类别
type ErrorBody struct {
	Error string `json:"error" example:"Invalid limit (1..200)"`
}

// OKBody 无业务数据的成功响应
type OKBody struct {
	OK bool `json:"ok" example:"true"`
}

// MessageBody 带提示信息的成功响应
type MessageBody struct {
	Message string `json:"message" example:"Updated"`
}

// Success 200响应，data直接作为响应体
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200响应，返回 {"message": msg}
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageBody{Message: msg})
}

// OK 200响应，返回 {"ok": true}
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, OKBody{OK: true})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := h.getBook.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
//
// 5xx错误记录底层原因到日志，客户端只能看到通用提示
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	if status >= http.StatusInternalServerError {
		ev := logger.Error().
			Int("code", appErr.Code).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path)
		if rid, ok := c.Get("request_id"); ok {
			ev = ev.Interface("request_id", rid)
		}
		if appErr.Err != nil {
			ev = ev.Err(appErr.Err)
		}
		ev.Msg(appErr.Message)
	}

	c.AbortWithStatusJSON(status, ErrorBody{Error: appErr.Message})
}

// ErrorWithStatus 自定义状态码和消息
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// =========================================
// 分页响应结构
// =========================================

// PageMeta 分页元数据
type PageMeta struct {
	Page  int   `json:"page" example:"1"`
	Limit int   `json:"limit" example:"24"`
	Total int64 `json:"total" example:"57"`
	Pages int   `json:"pages" example:"3"`
}

// PageData 分页数据封装
type PageData struct {
	Items interface{} `json:"items"`
	Meta  PageMeta    `json:"meta"`
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, items interface{}, meta PageMeta) {
	Success(c, PageData{Items: items, Meta: meta})
}
