package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/readieg/library/internal/domain/book"
	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/mq"
	"github.com/readieg/library/pkg/tracing"
)

// DeleteBookUseCase 删除图书(管理员,物理删除)
type DeleteBookUseCase struct {
	bookService book.Service
	notifier    mutationNotifier
}

func NewDeleteBookUseCase(bookService book.Service, publisher mq.EventPublisher) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, notifier: newNotifier(publisher)}
}

// Execute 重复删除返回ErrBookNotFound
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id string) (err error) {
	if err := uc.bookService.CheckID(id); err != nil {
		return err
	}

	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook", attribute.String("book_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	if err := uc.bookService.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Str("book_id", id).Msg("图书已删除")
	uc.notifier.notify(ctx, mq.RoutingBookDeleted, "deleted", id)
	return nil
}
