package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/readieg/library/internal/domain/book"
)

// docField 领域字段名 → 文档字段名（只有ID不同）
func docField(field string) string {
	if field == book.FieldID {
		return "_id"
	}
	return field
}

// buildFilter 把封闭谓词集合翻译成MongoDB过滤文档
// 学习要点：
// 1. ContainsSubstring → 大小写不敏感正则，用户输入先QuoteMeta，按字面量匹配
// 2. InSet → $in
// 3. Range → $gte / $lte，只写入提供了的边界
func buildFilter(f book.Filter) bson.D {
	out := bson.D{}
	for _, p := range f {
		switch p := p.(type) {
		case book.ContainsSubstring:
			out = append(out, bson.E{
				Key:   docField(p.Field),
				Value: primitive.Regex{Pattern: regexp.QuoteMeta(p.Value), Options: "i"},
			})
		case book.InSet:
			out = append(out, bson.E{
				Key:   docField(p.Field),
				Value: bson.D{{Key: "$in", Value: p.Values}},
			})
		case book.Range:
			bounds := bson.D{}
			if p.Min != nil {
				bounds = append(bounds, bson.E{Key: "$gte", Value: *p.Min})
			}
			if p.Max != nil {
				bounds = append(bounds, bson.E{Key: "$lte", Value: *p.Max})
			}
			if len(bounds) > 0 {
				out = append(out, bson.E{Key: docField(p.Field), Value: bounds})
			}
		}
	}
	return out
}

// buildSort 排序文档；非ID排序追加_id升序，保证翻页顺序稳定
func buildSort(s book.Sort) bson.D {
	field := docField(s.Field)
	if s.Field == "" {
		field = "_id"
	}

	dir := 1
	if s.Desc {
		dir = -1
	}

	out := bson.D{{Key: field, Value: dir}}
	if field != "_id" {
		out = append(out, bson.E{Key: "_id", Value: 1})
	}
	return out
}

// buildProjection nil投影返回nil（完整文档）；_id默认总会返回
func buildProjection(p book.Projection) bson.D {
	if p == nil {
		return nil
	}
	out := make(bson.D, 0, len(p))
	for _, f := range p {
		out = append(out, bson.E{Key: docField(f), Value: 1})
	}
	return out
}
