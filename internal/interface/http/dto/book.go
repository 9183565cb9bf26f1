package dto

import "time"

// 以下类型只用于Swagger文档
// 实际响应中的图书记录是动态字段（支持fields投影），由appbook.Record渲染

// BookRecord 完整图书记录（未投影时）
type BookRecord struct {
	ID           string    `json:"id" example:"665f1c2e9b1d8a0012345678"`
	Title        string    `json:"title" example:"The Left Hand of Darkness"`
	Author       string    `json:"author" example:"Ursula K. Le Guin"`
	Description  string    `json:"description" example:""`
	Series       string    `json:"series" example:"Hainish Cycle"`
	SeriesNumber *float64  `json:"seriesNumber" example:"4"`
	Tags         []string  `json:"tags" example:"scifi,classic"`
	Year         *int      `json:"year" example:"1969"`
	Rating       *float64  `json:"rating" example:"4.5"`
	Pages        *int      `json:"pages" example:"304"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PageMeta 分页元数据
type PageMeta struct {
	Page  int   `json:"page" example:"1"`
	Limit int   `json:"limit" example:"24"`
	Total int64 `json:"total" example:"137"`
	Pages int   `json:"pages" example:"6"`
}

// BookListResponse 图书列表响应
type BookListResponse struct {
	Items []BookRecord `json:"items"`
	Meta  PageMeta     `json:"meta"`
}

// CreatedResponse 新增成功
type CreatedResponse struct {
	ID string `json:"id" example:"665f1c2e9b1d8a0012345678"`
}
