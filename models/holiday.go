package models

import (
	"time"

	"propshare/utils"
)

type Holiday struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name"`
	FromDate        time.Time `json:"fromDate"`                            // Ngày bắt đầu kỳ nghỉ
	ToDate          time.Time `json:"toDate"`                              // Ngày kết thúc kỳ nghỉ (tính cả ngày này)
	PropertyID      *uint     `json:"propertyId,omitempty" gorm:"index"`   // nil: áp dụng cho mọi bất động sản
	RecurringYearly bool      `json:"recurringYearly" gorm:"default:false"` // Lặp lại hằng năm theo ngày/tháng
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// AppliesTo kiểm tra kỳ nghỉ có áp dụng cho bất động sản không
func (h *Holiday) AppliesTo(propertyID uint) bool {
	return h.PropertyID == nil || *h.PropertyID == propertyID
}

// Covers kiểm tra đêm day có nằm trong kỳ nghỉ không
func (h *Holiday) Covers(day time.Time) bool {
	if !h.RecurringYearly {
		d := utils.DateOnly(day)
		return !d.Before(utils.DateOnly(h.FromDate)) && !d.After(utils.DateOnly(h.ToDate))
	}
	from := utils.MonthDay(h.FromDate)
	to := utils.MonthDay(h.ToDate)
	md := utils.MonthDay(day)
	if from <= to {
		return md >= from && md <= to
	}
	return md >= from || md <= to
}
