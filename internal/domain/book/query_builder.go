package book

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// 分页约束
const (
	DefaultLimit = 24
	MaxLimit     = 200
	MaxPage      = 100000
)

var (
	// sortableFields 允许排序的字段
	sortableFields = map[string]bool{
		FieldTitle:     true,
		FieldAuthor:    true,
		FieldYear:      true,
		FieldRating:    true,
		FieldCreatedAt: true,
	}

	// projectableFields 允许投影的字段
	projectableFields = map[string]bool{
		FieldTitle:        true,
		FieldAuthor:       true,
		FieldDescription:  true,
		FieldSeries:       true,
		FieldSeriesNumber: true,
		FieldTags:         true,
		FieldYear:         true,
		FieldRating:       true,
		FieldPages:        true,
		FieldCreatedAt:    true,
	}
)

// BuildListQuery 把不可信的查询参数翻译成安全的ListQuery
//
// 支持的参数:
//
//	author, series         大小写不敏感子串
//	tag                    标签包含
//	minRating              rating >= minRating
//	yearFrom, yearTo       year闭区间(任一侧可省略)
//	sort=field:asc|desc    非白名单字段回退为ID升序,不报错
//	fields=a,b             投影,非白名单字段忽略
//	limit, page            分页
//
// 值为空字符串的参数视为未提供,数值参数先去掉首尾空白再判断。所有校验都在访问存储之前完成。
func BuildListQuery(params url.Values) (ListQuery, error) {
	filter, err := ParseFilter(params)
	if err != nil {
		return ListQuery{}, err
	}

	page, err := ParsePage(params.Get("limit"), params.Get("page"))
	if err != nil {
		return ListQuery{}, err
	}

	return ListQuery{
		Filter:     filter,
		Sort:       ParseSort(params.Get("sort")),
		Projection: ParseProjection(params.Get("fields")),
		Page:       page,
	}, nil
}

// ParseFilter 构造过滤谓词
func ParseFilter(params url.Values) (Filter, error) {
	var filter Filter

	if v := params.Get("author"); v != "" {
		filter = append(filter, ContainsSubstring{Field: FieldAuthor, Value: v})
	}
	if v := params.Get("series"); v != "" {
		filter = append(filter, ContainsSubstring{Field: FieldSeries, Value: v})
	}
	if v := params.Get("tag"); v != "" {
		filter = append(filter, InSet{Field: FieldTags, Values: []string{v}})
	}

	if v := numericParam(params, "minRating"); v != "" {
		mr, ok := parseNumber(v)
		if !ok {
			return nil, ErrInvalidMinRating
		}
		filter = append(filter, Range{Field: FieldRating, Min: &mr})
	}

	yearFrom, yearTo := numericParam(params, "yearFrom"), numericParam(params, "yearTo")
	if yearFrom != "" || yearTo != "" {
		r := Range{Field: FieldYear}
		if yearFrom != "" {
			yf, ok := parseNumber(yearFrom)
			if !ok {
				return nil, ErrInvalidYearRange
			}
			r.Min = &yf
		}
		if yearTo != "" {
			yt, ok := parseNumber(yearTo)
			if !ok {
				return nil, ErrInvalidYearRange
			}
			r.Max = &yt
		}
		filter = append(filter, r)
	}

	return filter, nil
}

// ParseSort 解析 "field:direction"
// 只有字面量desc(不区分大小写)表示降序;字段不在白名单时回退到DefaultSort
func ParseSort(raw string) Sort {
	if raw == "" {
		return DefaultSort
	}

	parts := strings.Split(raw, ":")
	field := strings.TrimSpace(parts[0])
	if !sortableFields[field] {
		return DefaultSort
	}

	desc := len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
	return Sort{Field: field, Desc: desc}
}

// ParseProjection 解析逗号分隔的字段列表
// 没有任何白名单字段时返回nil(不投影,返回完整文档)
func ParseProjection(raw string) Projection {
	if raw == "" {
		return nil
	}

	var p Projection
	seen := make(map[string]bool)
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if !projectableFields[f] || seen[f] {
			continue
		}
		seen[f] = true
		p = append(p, f)
	}
	return p
}

// ParsePage 解析分页参数
// limit默认24,必须是[1,200]内的整数;page默认1,必须是[1,100000]内的整数
func ParsePage(limitRaw, pageRaw string) (Page, error) {
	p := Page{Page: 1, Limit: DefaultLimit}
	limitRaw, pageRaw = strings.TrimSpace(limitRaw), strings.TrimSpace(pageRaw)

	if limitRaw != "" {
		lim, err := strconv.Atoi(limitRaw)
		if err != nil || lim < 1 || lim > MaxLimit {
			return Page{}, ErrInvalidLimit
		}
		p.Limit = lim
	}

	if pageRaw != "" {
		n, err := strconv.Atoi(pageRaw)
		if err != nil || n < 1 || n > MaxPage {
			return Page{}, ErrInvalidPage
		}
		p.Page = n
	}

	return p, nil
}

func numericParam(params url.Values, key string) string {
	return strings.TrimSpace(params.Get(key))
}

// parseNumber 解析有限数值,NaN/Inf视为非法
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
