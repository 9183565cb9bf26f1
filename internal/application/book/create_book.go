package book

import (
	"context"

	"github.com/readieg/library/internal/domain/book"
	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/mq"
	"github.com/readieg/library/pkg/tracing"
)

// CreateBookUseCase 新增图书用例(管理员)
// 设计说明:
// 1. 应用层只做编排:校验请求体 → 领域服务创建 → 发布事件
// 2. 权限由HTTP层的鉴权链保证
type CreateBookUseCase struct {
	bookService book.Service
	notifier    mutationNotifier
}

// NewCreateBookUseCase 创建用例;publisher为nil时不发布事件
func NewCreateBookUseCase(bookService book.Service, publisher mq.EventPublisher) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, notifier: newNotifier(publisher)}
}

// CreateBookResponse 新增响应
type CreateBookResponse struct {
	ID string `json:"id" example:"665f1c2e9b1d8a0012345678"`
}

// Execute 执行新增
func (uc *CreateBookUseCase) Execute(ctx context.Context, p book.Payload) (resp *CreateBookResponse, err error) {
	fields, err := book.ParsePayload(p)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() { tracing.EndSpan(span, err) }()

	id, err := uc.bookService.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("book_id", id).Str("title", fields.Title).Msg("图书已创建")
	uc.notifier.notify(ctx, mq.RoutingBookCreated, "created", id)

	return &CreateBookResponse{ID: id}, nil
}
