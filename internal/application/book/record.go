package book

import (
	"github.com/readieg/library/internal/domain/book"
)

// Record 对外的图书记录
// 使用map是因为投影后的字段集合是动态的;未投影时包含全部字段,缺省的可选数值为null
type Record map[string]interface{}

// NewRecord 按投影渲染图书,id总是包含
func NewRecord(b *book.Book, p book.Projection) Record {
	r := Record{book.FieldID: b.ID}

	set := func(field string, v interface{}) {
		if p.Includes(field) {
			r[field] = v
		}
	}

	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}

	set(book.FieldTitle, b.Title)
	set(book.FieldAuthor, b.Author)
	set(book.FieldDescription, b.Description)
	set(book.FieldSeries, b.Series)
	set(book.FieldSeriesNumber, b.SeriesNumber)
	set(book.FieldTags, tags)
	set(book.FieldYear, b.Year)
	set(book.FieldRating, b.Rating)
	set(book.FieldPages, b.Pages)
	set(book.FieldCreatedAt, b.CreatedAt)

	return r
}
