package book

import (
	"context"

	"github.com/readieg/library/internal/domain/book"
)

// GetBookUseCase 图书详情
type GetBookUseCase struct {
	bookService book.Service
}

func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 非法ID → ErrInvalidBookID(400),不存在 → ErrBookNotFound(404)
func (uc *GetBookUseCase) Execute(ctx context.Context, id string) (Record, error) {
	if err := uc.bookService.CheckID(id); err != nil {
		return nil, err
	}
	b, err := uc.bookService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewRecord(b, nil), nil
}
