package dto

import (
	"time"

	"propshare/models"
	"propshare/services/allocation"
	"propshare/utils"
)

// AcquisitionEntry là một lần mua cổ phần, ngày mua dạng dd/mm/yyyy
type AcquisitionEntry struct {
	PropertyID      uint   `json:"propertyId" binding:"required"`
	NoOfShares      int    `json:"noOfShares" binding:"required,min=1"`
	AcquisitionDate string `json:"acquisitionDate" binding:"required,ddmmyyyy"`
}

type AllocateRequest struct {
	UserID  uint               `json:"userId" binding:"required"`
	Entries []AcquisitionEntry `json:"entries" binding:"required,min=1,dive"`
}

func (r AllocateRequest) ToRequest(createdBy uint) (allocation.Request, error) {
	req := allocation.Request{UserID: r.UserID, CreatedBy: createdBy}
	for _, e := range r.Entries {
		date, err := utils.ParseDate(e.AcquisitionDate)
		if err != nil {
			return allocation.Request{}, err
		}
		req.Entries = append(req.Entries, allocation.Entry{
			PropertyID:      e.PropertyID,
			NoOfShares:      e.NoOfShares,
			AcquisitionDate: date,
		})
	}
	return req, nil
}

type UserPropertyQuery struct {
	UserID     uint `form:"userId"`
	PropertyID uint `form:"propertyId"`
	Year       int  `form:"year" binding:"omitempty,min=2000"`
}

type UserPropertyResponse struct {
	ID                uint               `json:"id"`
	UserID            uint               `json:"userId"`
	PropertyID        uint               `json:"propertyId"`
	PropertyName      string             `json:"propertyName,omitempty"`
	AcquisitionID     string             `json:"acquisitionId"`
	NoOfShare         int                `json:"noOfShare"`
	AcquisitionDate   string             `json:"acquisitionDate"`
	Year              int                `json:"year"`
	MaximumStayLength int                `json:"maximumStayLength"`
	CreatedBy         uint               `json:"createdBy"`
	PeakSeason        models.NightBucket `json:"peakSeason"`
	OffSeason         models.NightBucket `json:"offSeason"`
	PeakHoliday       models.NightBucket `json:"peakHoliday"`
	OffHoliday        models.NightBucket `json:"offHoliday"`
	LastMinute        models.NightBucket `json:"lastMinute"`
	CreatedAt         time.Time          `json:"createdAt"`
}

func ToUserPropertyResponses(rows []models.UserProperty) []UserPropertyResponse {
	res := make([]UserPropertyResponse, 0, len(rows))
	for _, r := range rows {
		item := UserPropertyResponse{
			ID:                r.ID,
			UserID:            r.UserID,
			PropertyID:        r.PropertyID,
			AcquisitionID:     r.AcquisitionID,
			NoOfShare:         r.NoOfShare,
			AcquisitionDate:   utils.FormatDate(r.AcquisitionDate),
			Year:              r.Year,
			MaximumStayLength: r.MaximumStayLength,
			CreatedBy:         r.CreatedBy,
			PeakSeason:        r.PeakSeason,
			OffSeason:         r.OffSeason,
			PeakHoliday:       r.PeakHoliday,
			OffHoliday:        r.OffHoliday,
			LastMinute:        r.LastMinute,
			CreatedAt:         r.CreatedAt,
		}
		if r.Property != nil {
			item.PropertyName = r.Property.Name
		}
		res = append(res, item)
	}
	return res
}
