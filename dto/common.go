package dto

import "propshare/response"

// PaginatedResponse là struct chung cho các response có phân trang
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery là tham số phân trang, page bắt đầu từ 0
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize trả về page, limit sau khi áp giá trị mặc định
func (q PageQuery) Normalize() (int, int) {
	page, limit := q.Page, q.Limit
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// StatusRequest dùng cho các API bật/tắt trạng thái
type StatusRequest struct {
	Status *int `json:"status" binding:"required,oneof=0 1"`
}
