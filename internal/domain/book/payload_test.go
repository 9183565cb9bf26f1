package book

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestParsePayloadNormalizes(t *testing.T) {
	p := decode(t, `{
		"title": "  Dune ",
		"author": "Herbert",
		"year": "1965",
		"rating": 4.5,
		"pages": null,
		"seriesNumber": "",
		"tags": [" sf ", "", "classic", 42]
	}`)

	f, err := ParsePayload(p)
	require.NoError(t, err)

	assert.Equal(t, "Dune", f.Title)
	assert.Equal(t, "Herbert", f.Author)
	require.NotNil(t, f.Year)
	assert.Equal(t, 1965, *f.Year)
	require.NotNil(t, f.Rating)
	assert.Equal(t, 4.5, *f.Rating)
	assert.Nil(t, f.Pages)
	assert.Nil(t, f.SeriesNumber)
	assert.Equal(t, []string{"sf", "classic", "42"}, f.Tags)
}

func TestParsePayloadMissingRequired(t *testing.T) {
	// 只缺title时,错误信息同时列出title和author
	_, err := ParsePayload(decode(t, `{"author": "Herbert"}`))
	require.ErrorIs(t, err, ErrMissingRequired)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "author")

	_, err = ParsePayload(decode(t, `{}`))
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestParsePayloadErrors(t *testing.T) {
	cases := []struct {
		body string
		want error
	}{
		{`{"title":" D ","author":"Herbert"}`, ErrTitleTooShort},
		{`{"title":"Dune","author":"   "}`, ErrTitleTooShort},
		{`{"title":"Dune","author":"Herbert","year":2101}`, ErrInvalidYear},
		{`{"title":"Dune","author":"Herbert","year":-1}`, ErrInvalidYear},
		{`{"title":"Dune","author":"Herbert","year":1965.5}`, ErrInvalidYear},
		{`{"title":"Dune","author":"Herbert","year":"soon"}`, ErrInvalidYear},
		{`{"title":"Dune","author":"Herbert","rating":5.1}`, ErrInvalidRating},
		{`{"title":"Dune","author":"Herbert","rating":true}`, ErrInvalidRating},
		{`{"title":"Dune","author":"Herbert","pages":0}`, ErrInvalidPages},
		{`{"title":"Dune","author":"Herbert","pages":100001}`, ErrInvalidPages},
		{`{"title":"Dune","author":"Herbert","seriesNumber":10001}`, ErrInvalidSeriesNum},
		{`{"title":"Dune","author":"Herbert","seriesNumber":-0.5}`, ErrInvalidSeriesNum},
		// 多个字段非法时按固定顺序报第一个
		{`{"title":"Dune","author":"Herbert","rating":9,"year":3000}`, ErrInvalidYear},
	}

	for _, tc := range cases {
		_, err := ParsePayload(decode(t, tc.body))
		assert.ErrorIs(t, err, tc.want, tc.body)
	}
}

func TestParsePayloadBoundaries(t *testing.T) {
	f, err := ParsePayload(decode(t, `{"title":"Du","author":"He","year":0,"rating":0,"pages":1,"seriesNumber":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0, *f.Year)
	assert.Equal(t, 0.0, *f.Rating)
	assert.Equal(t, 1, *f.Pages)
	assert.Equal(t, 0.0, *f.SeriesNumber)

	f, err = ParsePayload(decode(t, `{"title":"Du","author":"He","year":2100,"rating":5,"pages":100000,"seriesNumber":10000}`))
	require.NoError(t, err)
	assert.Equal(t, 2100, *f.Year)
}

func TestParsePayloadTagCap(t *testing.T) {
	tags := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		tags = append(tags, fmt.Sprintf("%q", fmt.Sprintf("t%d", i)))
	}
	body := `{"title":"Dune","author":"Herbert","tags":[` + strings.Join(tags, ",") + `]}`

	f, err := ParsePayload(decode(t, body))
	require.NoError(t, err)
	assert.Len(t, f.Tags, MaxTags)
	assert.Equal(t, "t0", f.Tags[0])
	assert.Equal(t, "t19", f.Tags[19])
}

func TestFlexTagsNonArray(t *testing.T) {
	f, err := ParsePayload(decode(t, `{"title":"Dune","author":"Herbert","tags":"sf"}`))
	require.NoError(t, err)
	assert.NotNil(t, f.Tags)
	assert.Empty(t, f.Tags)
}

func TestFlexStringFields(t *testing.T) {
	f, err := ParsePayload(decode(t, `{"title":1984,"author":"Orwell","description":42,"series":true}`))
	require.NoError(t, err)
	assert.Equal(t, "1984", f.Title)
	assert.Equal(t, "42", f.Description)
	assert.Equal(t, "true", f.Series)

	// null、false、0与缺失相同
	for _, body := range []string{
		`{"title":null,"author":"Orwell"}`,
		`{"title":false,"author":"Orwell"}`,
		`{"title":"1984","author":0}`,
	} {
		_, err := ParsePayload(decode(t, body))
		assert.ErrorIs(t, err, ErrMissingRequired, body)
	}

	f, err = ParsePayload(decode(t, `{"title":"Dune","author":"Herbert","description":null,"series":false}`))
	require.NoError(t, err)
	assert.Empty(t, f.Description)
	assert.Empty(t, f.Series)

	var p Payload
	assert.Error(t, json.Unmarshal([]byte(`{"title":["a","b"],"author":"x"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"title":"a","author":{"n":1}}`), &p))
}
