package book

// Predicate 过滤谓词(封闭集合)
// 只有本包内的三种谓词实现了该接口,存储层用type switch逐一翻译
type Predicate interface {
	predicate()
}

// ContainsSubstring 大小写不敏感的字面子串匹配
// Value是用户原文,存储层负责转义(正则元字符 / LIKE通配符)
type ContainsSubstring struct {
	Field string
	Value string
}

// InSet 数组字段包含Values中任意一个值
type InSet struct {
	Field  string
	Values []string
}

// Range 闭区间,Min/Max为nil表示该侧不限
type Range struct {
	Field string
	Min   *float64
	Max   *float64
}

func (ContainsSubstring) predicate() {}
func (InSet) predicate()             {}
func (Range) predicate()             {}

// Filter 多个谓词之间是AND关系,空Filter匹配全部
type Filter []Predicate

// Sort 单字段排序,零值即按ID升序
type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort 默认排序:ID升序(结果顺序确定)
var DefaultSort = Sort{Field: FieldID}

// Projection 投影字段列表,nil表示返回完整文档;ID总是返回
type Projection []string

// Includes 字段是否在投影中(nil投影包含所有字段)
func (p Projection) Includes(field string) bool {
	if p == nil || field == FieldID {
		return true
	}
	for _, f := range p {
		if f == field {
			return true
		}
	}
	return false
}

// Page 分页窗口
type Page struct {
	Page  int
	Limit int
}

// Skip 偏移量 = (page-1)*limit
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// ListQuery 一次列表查询的完整描述
type ListQuery struct {
	Filter     Filter
	Sort       Sort
	Projection Projection
	Page       Page
}

// PageMeta 分页元数据
type PageMeta struct {
	Page  int
	Limit int
	Total int64
	Pages int
}

// NewPageMeta pages = max(1, ceil(total/limit))
func NewPageMeta(p Page, total int64) PageMeta {
	pages := 1
	if p.Limit > 0 && total > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PageMeta{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}
