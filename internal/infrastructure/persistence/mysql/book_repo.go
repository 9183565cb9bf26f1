package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/readieg/library/internal/domain/book"
	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/metrics"
)

// columns 领域字段名 → 列名
var columns = map[string]string{
	book.FieldID:           "id",
	book.FieldTitle:        "title",
	book.FieldAuthor:       "author",
	book.FieldDescription:  "description",
	book.FieldSeries:       "series",
	book.FieldSeriesNumber: "series_number",
	book.FieldTags:         "tags",
	book.FieldYear:         "year",
	book.FieldRating:       "rating",
	book.FieldPages:        "pages",
	book.FieldCreatedAt:    "created_at",
}

// replaceColumns 整替换时写入的列（不含id、created_at）
var replaceColumns = []string{
	"title", "author", "description", "series", "series_number",
	"tags", "year", "rating", "pages",
}

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 过滤/排序/投影以GORM Scope组合,列名只来自白名单映射
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// filterScope 谓词 → WHERE
// 学习要点:
// 1. ContainsSubstring → LIKE,用户输入中的 % _ \ 先转义(默认排序规则大小写不敏感)
// 2. InSet → JSON_CONTAINS,多个值之间为OR
// 3. Range → >= / <=
func filterScope(f book.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range f {
			switch p := p.(type) {
			case book.ContainsSubstring:
				if col, ok := columns[p.Field]; ok {
					db = db.Where(col+" LIKE ?", containsPattern(p.Value))
				}
			case book.InSet:
				col, ok := columns[p.Field]
				if !ok || len(p.Values) == 0 {
					continue
				}
				conds := make([]string, len(p.Values))
				args := make([]interface{}, len(p.Values))
				for i, v := range p.Values {
					conds[i] = "JSON_CONTAINS(" + col + ", JSON_ARRAY(?))"
					args[i] = v
				}
				db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
			case book.Range:
				col, ok := columns[p.Field]
				if !ok {
					continue
				}
				if p.Min != nil {
					db = db.Where(col+" >= ?", *p.Min)
				}
				if p.Max != nil {
					db = db.Where(col+" <= ?", *p.Max)
				}
			}
		}
		return db
	}
}

// sortScope 排序;非ID排序追加id升序保证翻页稳定
func sortScope(s book.Sort) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col, ok := columns[s.Field]
		if !ok {
			col = "id"
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: s.Desc})
		if col != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		}
		return db
	}
}

// projectionScope 投影;id总是查询
func projectionScope(p book.Projection) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p == nil {
			return db
		}
		cols := []string{"id"}
		for _, f := range p {
			if col, ok := columns[f]; ok {
				cols = append(cols, col)
			}
		}
		return db.Select(cols)
	}
}

func pageScope(p book.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(int(p.Skip())).Limit(p.Limit)
	}
}

// Find 列表查询
func (r *bookRepository) Find(ctx context.Context, q book.ListQuery) ([]*book.Book, error) {
	defer metrics.ObserveStoreOp("mysql", "book_find", time.Now())

	var models []BookModel
	err := r.db.WithContext(ctx).
		Model(&BookModel{}).
		Scopes(filterScope(q.Filter), sortScope(q.Sort), projectionScope(q.Projection), pageScope(q.Page)).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Database(err)
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// Count 统计总数
func (r *bookRepository) Count(ctx context.Context, f book.Filter) (int64, error) {
	defer metrics.ObserveStoreOp("mysql", "book_count", time.Now())

	var total int64
	err := r.db.WithContext(ctx).
		Model(&BookModel{}).
		Scopes(filterScope(f)).
		Count(&total).Error
	if err != nil {
		return 0, apperrors.Database(err)
	}
	return total, nil
}

func (r *bookRepository) ValidID(id string) bool {
	_, ok := parseID(id)
	return ok
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	pk, ok := parseID(id)
	if !ok {
		return nil, book.ErrInvalidBookID
	}
	defer metrics.ObserveStoreOp("mysql", "book_get", time.Now())

	var model BookModel
	if err := r.db.WithContext(ctx).First(&model, pk).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Database(err)
	}
	return toBookEntity(&model), nil
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	defer metrics.ObserveStoreOp("mysql", "book_create", time.Now())

	model := toBookModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Database(err)
	}

	// 回填自增ID
	b.ID = formatID(model.ID)
	b.CreatedAt = model.CreatedAt
	return nil
}

// Replace 整体替换
// 学习要点:
// 1. Select指定列后,零值与NULL也会被写入(否则GORM会跳过零值字段)
// 2. DSN带clientFoundRows=true,RowsAffected是匹配行数,内容未变化也不会误判为不存在
func (r *bookRepository) Replace(ctx context.Context, id string, f book.Fields) error {
	pk, ok := parseID(id)
	if !ok {
		return book.ErrInvalidBookID
	}
	defer metrics.ObserveStoreOp("mysql", "book_replace", time.Now())

	b := &book.Book{}
	b.Apply(f)
	model := toBookModel(b)

	result := r.db.WithContext(ctx).
		Model(&BookModel{ID: pk}).
		Select(replaceColumns).
		Updates(model)
	if result.Error != nil {
		return apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Delete 物理删除
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	pk, ok := parseID(id)
	if !ok {
		return book.ErrInvalidBookID
	}
	defer metrics.ObserveStoreOp("mysql", "book_delete", time.Now())

	result := r.db.WithContext(ctx).Delete(&BookModel{}, pk)
	if result.Error != nil {
		return apperrors.Database(result.Error)
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func toBookModel(b *book.Book) *BookModel {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return &BookModel{
		Title:        b.Title,
		Author:       b.Author,
		Description:  b.Description,
		Series:       b.Series,
		SeriesNumber: b.SeriesNumber,
		Tags:         tags,
		Year:         b.Year,
		Rating:       b.Rating,
		Pages:        b.Pages,
		CreatedAt:    b.CreatedAt,
	}
}

func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:           formatID(m.ID),
		Title:        m.Title,
		Author:       m.Author,
		Description:  m.Description,
		Series:       m.Series,
		SeriesNumber: m.SeriesNumber,
		Tags:         m.Tags,
		Year:         m.Year,
		Rating:       m.Rating,
		Pages:        m.Pages,
		CreatedAt:    m.CreatedAt,
	}
}
