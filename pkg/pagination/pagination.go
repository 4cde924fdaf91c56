package pagination

import (
	"strconv"

	"gorm.io/gorm"
)

const (
	// DefaultPage 是未指定page参数时使用的页码，页码从1开始。
	DefaultPage = 1
	// DefaultPerPage 是未指定per_page参数时的每页条数。
	DefaultPerPage = 20
	// MaxPerPage 限制单页条数的上限，防止一次性拉取全表。
	MaxPerPage = 100
)

// Params 描述一次列表查询的分页参数。
type Params struct {
	Page    int
	PerPage int
}

// ParseParams 将查询字符串中的page/per_page解析为规范化的分页参数。
// 非法或缺失的值回落到默认值。
func ParseParams(pageStr, perPageStr string) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Meta 是随每个列表结果返回的分页元数据。
// NextPage/PrevPage在相应边界处为null。
type Meta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	PerPage     int   `json:"per_page"`
	NextPage    *int  `json:"next_page"`
	PrevPage    *int  `json:"prev_page"`
}

// NewMeta 根据总行数和分页参数计算元数据。
func NewMeta(totalCount int64, p Params) *Meta {
	totalPages := int((totalCount + int64(p.PerPage) - 1) / int64(p.PerPage))

	meta := &Meta{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		PerPage:     p.PerPage,
	}
	if p.Page < totalPages {
		next := p.Page + 1
		meta.NextPage = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		meta.PrevPage = &prev
	}
	return meta
}

// Scope 返回一个GORM scope，把分页参数转换为OFFSET/LIMIT。
// 用法: db.Scopes(pagination.Scope(params)).Find(&rows)
func Scope(p Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (p.Page - 1) * p.PerPage
		return db.Offset(offset).Limit(p.PerPage)
	}
}
