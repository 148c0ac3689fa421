package dto

import (
	"time"

	"propshare/models"
	"propshare/utils"
)

// HolidayResponse là DTO cho response của holiday
type HolidayResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	FromDate        string    `json:"fromDate"`
	ToDate          string    `json:"toDate"`
	PropertyID      *uint     `json:"propertyId,omitempty"`
	RecurringYearly bool      `json:"recurringYearly"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func ToHolidayResponse(h models.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:              h.ID,
		Name:            h.Name,
		FromDate:        utils.FormatDate(h.FromDate),
		ToDate:          utils.FormatDate(h.ToDate),
		PropertyID:      h.PropertyID,
		RecurringYearly: h.RecurringYearly,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

// HolidayRequest là DTO cho yêu cầu tạo mới hoặc cập nhật holiday
type HolidayRequest struct {
	Name            string `json:"name" binding:"required"`
	FromDate        string `json:"fromDate" binding:"required,ddmmyyyy"`
	ToDate          string `json:"toDate" binding:"required,ddmmyyyy"`
	PropertyID      *uint  `json:"propertyId"`
	RecurringYearly bool   `json:"recurringYearly"`
}

func (r HolidayRequest) ToModel() (models.Holiday, error) {
	from, err := utils.ParseDate(r.FromDate)
	if err != nil {
		return models.Holiday{}, err
	}
	to, err := utils.ParseDate(r.ToDate)
	if err != nil {
		return models.Holiday{}, err
	}
	return models.Holiday{
		Name:            r.Name,
		FromDate:        from,
		ToDate:          to,
		PropertyID:      r.PropertyID,
		RecurringYearly: r.RecurringYearly,
	}, nil
}

type HolidayListQuery struct {
	PageQuery
	Name       string `form:"name"`
	PropertyID *uint  `form:"propertyId"`
	FromDate   string `form:"fromDate" binding:"omitempty,ddmmyyyy"`
	ToDate     string `form:"toDate" binding:"omitempty,ddmmyyyy"`
}
