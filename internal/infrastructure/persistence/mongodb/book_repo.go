package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/readieg/library/internal/domain/book"
	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/metrics"
)

// bookDoc books集合的文档结构
// 可选数值字段用指针，缺省时存null；tags始终是数组
type bookDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Author       string             `bson:"author"`
	Description  string             `bson:"description"`
	Series       string             `bson:"series"`
	SeriesNumber *float64           `bson:"seriesNumber"`
	Tags         []string           `bson:"tags"`
	Year         *int               `bson:"year"`
	Rating       *float64           `bson:"rating"`
	Pages        *int               `bson:"pages"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// bookRepository 图书仓储实现(MongoDB)
type bookRepository struct {
	col *mongo.Collection
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *mongo.Database) book.Repository {
	return &bookRepository{col: db.Collection(BooksCollection)}
}

// Find 列表查询
func (r *bookRepository) Find(ctx context.Context, q book.ListQuery) ([]*book.Book, error) {
	defer metrics.ObserveStoreOp("mongo", "book_find", time.Now())

	opts := options.Find().
		SetSort(buildSort(q.Sort)).
		SetSkip(q.Page.Skip()).
		SetLimit(int64(q.Page.Limit))
	if proj := buildProjection(q.Projection); proj != nil {
		opts.SetProjection(proj)
	}

	cur, err := r.col.Find(ctx, buildFilter(q.Filter), opts)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	var docs []bookDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperrors.Database(err)
	}

	books := make([]*book.Book, len(docs))
	for i := range docs {
		books[i] = toBookEntity(&docs[i])
	}
	return books, nil
}

// Count 统计总数
func (r *bookRepository) Count(ctx context.Context, f book.Filter) (int64, error) {
	defer metrics.ObserveStoreOp("mongo", "book_count", time.Now())

	n, err := r.col.CountDocuments(ctx, buildFilter(f))
	if err != nil {
		return 0, apperrors.Database(err)
	}
	return n, nil
}

// ValidID 24位十六进制ObjectID
func (r *bookRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, book.ErrInvalidBookID
	}
	defer metrics.ObserveStoreOp("mongo", "book_get", time.Now())

	var doc bookDoc
	err = r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Database(err)
	}
	return toBookEntity(&doc), nil
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	defer metrics.ObserveStoreOp("mongo", "book_create", time.Now())

	doc := toBookDoc(b)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return apperrors.Database(err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid.Hex()
	}
	return nil
}

// Replace $set全部可写字段（不含_id、createdAt）
func (r *bookRepository) Replace(ctx context.Context, id string, f book.Fields) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.ErrInvalidBookID
	}
	defer metrics.ObserveStoreOp("mongo", "book_replace", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: setDoc(f)}},
	)
	if err != nil {
		return apperrors.Database(err)
	}
	if res.MatchedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// Delete 删除图书
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.ErrInvalidBookID
	}
	defer metrics.ObserveStoreOp("mongo", "book_delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return apperrors.Database(err)
	}
	if res.DeletedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func setDoc(f book.Fields) bson.D {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return bson.D{
		{Key: book.FieldTitle, Value: f.Title},
		{Key: book.FieldAuthor, Value: f.Author},
		{Key: book.FieldDescription, Value: f.Description},
		{Key: book.FieldSeries, Value: f.Series},
		{Key: book.FieldSeriesNumber, Value: f.SeriesNumber},
		{Key: book.FieldTags, Value: tags},
		{Key: book.FieldYear, Value: f.Year},
		{Key: book.FieldRating, Value: f.Rating},
		{Key: book.FieldPages, Value: f.Pages},
	}
}

func toBookDoc(b *book.Book) *bookDoc {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return &bookDoc{
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

func toBookEntity(d *bookDoc) *book.Book {
	return &book.Book{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Author:       d.Author,
		Description:  d.Description,
		Series:       d.Series,
		SeriesNumber: d.SeriesNumber,
		Tags:         d.Tags,
		Year:         d.Year,
		Rating:       d.Rating,
		Pages:        d.Pages,
		CreatedAt:    d.CreatedAt,
	}
}
