package mongodb

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/readieg/library/internal/domain/book"
)

func f64(v float64) *float64 { return &v }

func TestBuildFilter(t *testing.T) {
	f := book.Filter{
		book.ContainsSubstring{Field: book.FieldAuthor, Value: "(a+)+$"},
		book.InSet{Field: book.FieldTags, Values: []string{"sf"}},
		book.Range{Field: book.FieldRating, Min: f64(4)},
		book.Range{Field: book.FieldYear, Min: f64(1960), Max: f64(1970)},
	}

	got := buildFilter(f)

	assert.Equal(t, bson.D{
		{Key: "author", Value: primitive.Regex{Pattern: `\(a\+\)\+\$`, Options: "i"}},
		{Key: "tags", Value: bson.D{{Key: "$in", Value: []string{"sf"}}}},
		{Key: "rating", Value: bson.D{{Key: "$gte", Value: 4.0}}},
		{Key: "year", Value: bson.D{{Key: "$gte", Value: 1960.0}, {Key: "$lte", Value: 1970.0}}},
	}, got)
}

func TestBuildFilterEscapesLiteral(t *testing.T) {
	got := buildFilter(book.Filter{book.ContainsSubstring{Field: book.FieldSeries, Value: "a.b"}})
	re := got[0].Value.(primitive.Regex)

	// 转义后的模式只匹配字面量
	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	assert.True(t, compiled.MatchString("The A.B Saga"))
	assert.False(t, compiled.MatchString("axb"))
}

func TestBuildFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.D{}, buildFilter(nil))
	assert.Equal(t, bson.D{}, buildFilter(book.Filter{book.Range{Field: book.FieldYear}}))
}

func TestBuildSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, buildSort(book.DefaultSort))
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, buildSort(book.Sort{}))
	assert.Equal(t,
		bson.D{{Key: "year", Value: -1}, {Key: "_id", Value: 1}},
		buildSort(book.Sort{Field: book.FieldYear, Desc: true}))
}

func TestBuildProjection(t *testing.T) {
	assert.Nil(t, buildProjection(nil))
	assert.Equal(t,
		bson.D{{Key: "title", Value: 1}, {Key: "tags", Value: 1}},
		buildProjection(book.Projection{book.FieldTitle, book.FieldTags}))
}

func TestDocRoundTrip(t *testing.T) {
	year := 1965
	b := &book.Book{Title: "Dune", Author: "Herbert", Year: &year}

	doc := toBookDoc(b)
	assert.NotNil(t, doc.Tags, "tags以空数组存储")
	assert.True(t, doc.ID.IsZero())

	doc.ID = primitive.NewObjectID()
	back := toBookEntity(doc)
	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, 1965, *back.Year)
}

func TestValidID(t *testing.T) {
	books, users := &bookRepository{}, &userRepository{}
	for _, id := range []string{"", "bad", "42", "665f1c2e9b1d8a001234567"} {
		assert.False(t, books.ValidID(id), id)
		assert.False(t, users.ValidID(id), id)
	}
	assert.True(t, books.ValidID("665f1c2e9b1d8a0012345678"))
	assert.True(t, users.ValidID("665f1c2e9b1d8a0012345678"))
}
