package book

import (
	"time"
)

// 字段名（JSON字段名与文档存储字段名一致，ID在mongo中对应_id）
const (
	FieldID           = "id"
	FieldTitle        = "title"
	FieldAuthor       = "author"
	FieldDescription  = "description"
	FieldSeries       = "series"
	FieldSeriesNumber = "seriesNumber"
	FieldTags         = "tags"
	FieldYear         = "year"
	FieldRating       = "rating"
	FieldPages        = "pages"
	FieldCreatedAt    = "createdAt"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. ID由存储层分配,领域层只把它当作不透明字符串
// 2. 可选数值字段用指针表示,nil即"缺省",不存在"非法值"这种中间状态
// 3. CreatedAt只在创建时写入一次,整替换(Replace)不会修改它
type Book struct {
	ID           string
	Title        string
	Author       string
	Description  string
	Series       string
	SeriesNumber *float64
	Tags         []string
	Year         *int
	Rating       *float64
	Pages        *int
	CreatedAt    time.Time
}

// Fields 经过校验与规范化的图书字段(创建、整替换共用)
// 只能通过ParsePayload得到,字段值一定合法
type Fields struct {
	Title        string
	Author       string
	Description  string
	Series       string
	SeriesNumber *float64
	Tags         []string
	Year         *int
	Rating       *float64
	Pages        *int
}

// NewBook 创建新图书(工厂方法)
func NewBook(f Fields, now time.Time) *Book {
	b := &Book{CreatedAt: now}
	b.Apply(f)
	return b
}

// Apply 用新字段整体覆盖图书(非合并)
// 业务规则:未提供的可选字段回到默认值,例如不传tags即清空标签
func (b *Book) Apply(f Fields) {
	b.Title = f.Title
	b.Author = f.Author
	b.Description = f.Description
	b.Series = f.Series
	b.SeriesNumber = f.SeriesNumber
	b.Tags = f.Tags
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.Year = f.Year
	b.Rating = f.Rating
	b.Pages = f.Pages
}
