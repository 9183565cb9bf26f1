package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxTags 标签数量上限,超出部分直接丢弃
const MaxTags = 20

// FlexNumber 宽松数值
// 接受JSON数字或数字字符串;null和""表示未提供;其余值标记为非法,由校验阶段报错
type FlexNumber struct {
	Set   bool
	Value float64
}

// UnmarshalJSON 实现json.Unmarshaler
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	*n = FlexNumber{}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*n = FlexNumber{Set: true, Value: v}
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			f = math.NaN()
		}
		*n = FlexNumber{Set: true, Value: f}
	default:
		*n = FlexNumber{Set: true, Value: math.NaN()}
	}
	return nil
}

// ptr 未提供时返回nil
func (n FlexNumber) ptr() *float64 {
	if !n.Set {
		return nil
	}
	v := n.Value
	return &v
}

// FlexString 宽松字符串
// 数字、true转成字符串;null、false、0按未提供处理;数组和对象视为非法请求体
type FlexString string

// UnmarshalJSON 实现json.Unmarshaler
func (s *FlexString) UnmarshalJSON(data []byte) error {
	*s = ""

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
	case string:
		*s = FlexString(v)
	case float64:
		if v != 0 {
			*s = FlexString(strconv.FormatFloat(v, 'f', -1, 64))
		}
	case bool:
		if v {
			*s = "true"
		}
	default:
		return errNotScalar
	}
	return nil
}

var errNotScalar = errors.New("expected a scalar value")

// FlexTags 宽松标签列表
// 非数组按空列表处理;元素为数字/布尔时转成字符串,null元素忽略
type FlexTags []string

// UnmarshalJSON 实现json.Unmarshaler
func (t *FlexTags) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = nil
		return nil
	}

	out := make(FlexTags, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(v))
		}
	}
	*t = out
	return nil
}

// Payload 创建/整替换请求体(未校验)
type Payload struct {
	Title        FlexString `json:"title" swaggertype:"string"`
	Author       FlexString `json:"author" swaggertype:"string"`
	Description  FlexString `json:"description" swaggertype:"string"`
	Series       FlexString `json:"series" swaggertype:"string"`
	SeriesNumber FlexNumber `json:"seriesNumber" swaggertype:"number"`
	Tags         FlexTags   `json:"tags" swaggertype:"array,string"`
	Year         FlexNumber `json:"year" swaggertype:"integer"`
	Rating       FlexNumber `json:"rating" swaggertype:"number"`
	Pages        FlexNumber `json:"pages" swaggertype:"integer"`
}

// candidate 待校验的规范化字段
// 字段顺序决定报错顺序:title/author → year → rating → pages → seriesNumber
type candidate struct {
	Title        string   `json:"title" validate:"min=2"`
	Author       string   `json:"author" validate:"min=2"`
	Year         *float64 `json:"year" validate:"omitempty,finite,integral,min=0,max=2100"`
	Rating       *float64 `json:"rating" validate:"omitempty,finite,min=0,max=5"`
	Pages        *float64 `json:"pages" validate:"omitempty,finite,integral,min=1,max=100000"`
	SeriesNumber *float64 `json:"seriesNumber" validate:"omitempty,finite,min=0,max=10000"`
}

// fieldErrors 字段 → 对外错误
var fieldErrors = map[string]error{
	FieldTitle:        ErrTitleTooShort,
	FieldAuthor:       ErrTitleTooShort,
	FieldYear:         ErrInvalidYear,
	FieldRating:       ErrInvalidRating,
	FieldPages:        ErrInvalidPages,
	FieldSeriesNumber: ErrInvalidSeriesNum,
}

var validate = newValidator()

// newValidator 创建校验器
// 1. 错误中的字段名使用json名
// 2. finite: 拒绝NaN/Inf(非法输入在FlexNumber中被记为NaN)
// 3. integral: 必须是整数
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	_ = v.RegisterValidation("integral", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f)
	})

	return v
}

// ParsePayload 校验并规范化请求体
//
// 规则:
// 1. title、author缺失(或为空串、null、false、0) → "Missing required fields: title, author"
// 2. 去除首尾空白后长度至少2个字符
// 3. 每个可选数值字段单独做范围校验,year、pages必须为整数
// 4. tags逐个trim,丢弃空串,最多保留20个
//
// 要么返回完整合法的Fields,要么返回错误,不存在部分结果
func ParsePayload(p Payload) (Fields, error) {
	if p.Title == "" || p.Author == "" {
		return Fields{}, ErrMissingRequired
	}

	c := candidate{
		Title:        strings.TrimSpace(string(p.Title)),
		Author:       strings.TrimSpace(string(p.Author)),
		Year:         p.Year.ptr(),
		Rating:       p.Rating.ptr(),
		Pages:        p.Pages.ptr(),
		SeriesNumber: p.SeriesNumber.ptr(),
	}

	if err := validate.Struct(c); err != nil {
		return Fields{}, translate(err)
	}

	return Fields{
		Title:        c.Title,
		Author:       c.Author,
		Description:  string(p.Description),
		Series:       string(p.Series),
		SeriesNumber: c.SeriesNumber,
		Tags:         cleanTags(p.Tags),
		Year:         toInt(c.Year),
		Rating:       c.Rating,
		Pages:        toInt(c.Pages),
	}, nil
}

// translate 取第一个校验失败的字段,映射为对外错误
func translate(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if mapped, ok := fieldErrors[verrs[0].Field()]; ok {
			return mapped
		}
	}
	return err
}

func cleanTags(tags FlexTags) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}

func toInt(f *float64) *int {
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}
