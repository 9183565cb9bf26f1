package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	appbook "github.com/readieg/library/internal/application/book"
	"github.com/readieg/library/internal/domain/book"
	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/response"
)

// BookHandler 图书HTTP处理器
// Handler只负责：解析请求 → 调用用例 → 写响应，校验与业务规则都在下层
type BookHandler struct {
	listBooks   *appbook.ListBooksUseCase
	getBook     *appbook.GetBookUseCase
	createBook  *appbook.CreateBookUseCase
	replaceBook *appbook.ReplaceBookUseCase
	deleteBook  *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	createBook *appbook.CreateBookUseCase,
	replaceBook *appbook.ReplaceBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:   listBooks,
		getBook:     getBook,
		createBook:  createBook,
		replaceBook: replaceBook,
		deleteBook:  deleteBook,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  过滤、排序、投影、分页。fields投影时每条记录只包含id和所选字段
// @Tags         图书
// @Produce      json
// @Param        author     query  string  false  "作者（大小写不敏感子串）"
// @Param        series     query  string  false  "系列（大小写不敏感子串）"
// @Param        tag        query  string  false  "标签"
// @Param        minRating  query  number  false  "最低评分"
// @Param        yearFrom   query  number  false  "起始年份（含）"
// @Param        yearTo     query  number  false  "结束年份（含）"
// @Param        sort       query  string  false  "排序，如 year:desc"
// @Param        fields     query  string  false  "投影字段，逗号分隔"
// @Param        limit      query  int     false  "每页数量 1..200，默认24"
// @Param        page       query  int     false  "页码 1..100000，默认1"
// @Success      200 {object} dto.BookListResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      500 {object} response.ErrorBody "存储故障"
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.listBooks.Execute(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, response.PageMeta{
		Page:  result.Meta.Page,
		Limit: result.Meta.Limit,
		Total: result.Meta.Total,
		Pages: result.Meta.Pages,
	})
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id  path  string  true  "图书ID"
// @Success      200 {object} dto.BookRecord
// @Failure      400 {object} response.ErrorBody "Invalid id"
// @Failure      404 {object} response.ErrorBody "Book not found"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	record, err := h.getBook.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  数值字段可以是数字、数字字符串、null或空串（后两者表示未提供）
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body book.Payload true "图书信息"
// @Success      201 {object} dto.CreatedResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      401 {object} response.ErrorBody "未登录"
// @Failure      403 {object} response.ErrorBody "不是管理员"
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.createBook.Execute(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ReplaceBook 整体替换图书
// @Summary      更新图书（整体替换）
// @Description  未提供的可选字段恢复默认值，createdAt不变
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id       path  string        true  "图书ID"
// @Param        request  body  book.Payload  true  "图书信息"
// @Success      200 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      401 {object} response.ErrorBody "未登录"
// @Failure      403 {object} response.ErrorBody "不是管理员"
// @Failure      404 {object} response.ErrorBody "Book not found"
// @Router       /api/books/{id} [put]
func (h *BookHandler) ReplaceBook(c *gin.Context) {
	id := c.Param("id")
	p, err := bindPayload(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.replaceBook.Execute(c.Request.Context(), id, p); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Updated")
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Security     SessionCookie
// @Param        id  path  string  true  "图书ID"
// @Success      200 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "Invalid id"
// @Failure      401 {object} response.ErrorBody "未登录"
// @Failure      403 {object} response.ErrorBody "不是管理员"
// @Failure      404 {object} response.ErrorBody "Book not found"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.deleteBook.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Deleted")
}

// bindPayload 解析请求体
// 空请求体按空对象处理（随后报缺少必填字段），JSON格式错误返回ErrBindError
func bindPayload(c *gin.Context) (book.Payload, error) {
	var p book.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return book.Payload{}, nil
		}
		return book.Payload{}, apperrors.ErrBindError
	}
	return p, nil
}
