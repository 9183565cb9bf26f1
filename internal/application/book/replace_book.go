package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/readieg/library/internal/domain/book"
	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/mq"
	"github.com/readieg/library/pkg/tracing"
)

// ReplaceBookUseCase 整体替换图书(管理员)
// 未提供的可选字段恢复为默认值,createdAt保持不变
type ReplaceBookUseCase struct {
	bookService book.Service
	notifier    mutationNotifier
}

func NewReplaceBookUseCase(bookService book.Service, publisher mq.EventPublisher) *ReplaceBookUseCase {
	return &ReplaceBookUseCase{bookService: bookService, notifier: newNotifier(publisher)}
}

// Execute 校验顺序:ID格式 → 请求体 → 存储
func (uc *ReplaceBookUseCase) Execute(ctx context.Context, id string, p book.Payload) (err error) {
	if err := uc.bookService.CheckID(id); err != nil {
		return err
	}
	fields, err := book.ParsePayload(p)
	if err != nil {
		return err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "ReplaceBook", attribute.String("book_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	if err := uc.bookService.Replace(ctx, id, fields); err != nil {
		return err
	}

	logger.Info().Str("book_id", id).Msg("图书已更新")
	uc.notifier.notify(ctx, mq.RoutingBookUpdated, "updated", id)
	return nil
}
