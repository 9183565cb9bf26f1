package book

import (
	"context"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	"github.com/readieg/library/internal/domain/book"
	"github.com/readieg/library/pkg/tracing"
)

const tracerName = "application/book"

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 查询参数由Query Builder翻译,非法参数在访问存储前返回ValidationError
// 2. 投影在存储层生效,这里只负责把结果渲染成对外记录
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	Items []Record
	Meta  book.PageMeta
}

// Execute 执行列表查询
// 1. 解析查询参数
// 2. 并发查询数据与总数(领域服务负责)
// 3. 渲染记录;没有数据时items为[]而不是null
func (uc *ListBooksUseCase) Execute(ctx context.Context, params url.Values) (resp *ListBooksResponse, err error) {
	q, err := book.BuildListQuery(params)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks",
		attribute.Int("page", q.Page.Page),
		attribute.Int("limit", q.Page.Limit),
		attribute.Int("predicates", len(q.Filter)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	books, meta, err := uc.bookService.List(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]Record, 0, len(books))
	for _, b := range books {
		items = append(items, NewRecord(b, q.Projection))
	}

	return &ListBooksResponse{Items: items, Meta: meta}, nil
}
