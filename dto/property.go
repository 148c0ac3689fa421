package dto

import (
	"propshare/models"
	"propshare/utils"

	"gorm.io/datatypes"
)

type PropertyListQuery struct {
	PageQuery
	Name   string `form:"name"`
	Q      string `form:"q"` // tìm kiếm gần đúng theo tên, địa chỉ, tiện ích
	Status *int   `form:"status" binding:"omitempty,oneof=0 1"`
}

type PropertyRequest struct {
	Name             string `json:"name" binding:"required"`
	Address          string `json:"address"`
	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`
	Avatar           string `json:"avatar"`
	PropertyShare    int    `json:"propertyShare" binding:"min=0"`
	Status           *int   `json:"status" binding:"omitempty,oneof=0 1"`
	AmenityIDs       []uint `json:"amenityIds"`
}

type PropertyAmenitiesRequest struct {
	AmenityIDs []uint `json:"amenityIds"`
}

// PropertyDetailsRequest nhận ngày mùa cao điểm dạng dd/mm/yyyy
type PropertyDetailsRequest struct {
	PeakSeasonStartDate             string         `json:"peakSeasonStartDate" binding:"required,ddmmyyyy"`
	PeakSeasonEndDate               string         `json:"peakSeasonEndDate" binding:"required,ddmmyyyy"`
	PeakSeasonAllottedNights        int            `json:"peakSeasonAllottedNights" binding:"min=0"`
	OffSeasonAllottedNights         int            `json:"offSeasonAllottedNights" binding:"min=0"`
	PeakSeasonAllottedHolidayNights int            `json:"peakSeasonAllottedHolidayNights" binding:"min=0"`
	OffSeasonAllottedHolidayNights  int            `json:"offSeasonAllottedHolidayNights" binding:"min=0"`
	LastMinuteBookingAllottedNights int            `json:"lastMinuteBookingAllottedNights" binding:"min=0"`
	BookingRules                    datatypes.JSON `json:"bookingRules"`
}

func (r PropertyDetailsRequest) ToModel() (models.PropertyDetails, error) {
	start, err := utils.ParseDate(r.PeakSeasonStartDate)
	if err != nil {
		return models.PropertyDetails{}, err
	}
	end, err := utils.ParseDate(r.PeakSeasonEndDate)
	if err != nil {
		return models.PropertyDetails{}, err
	}
	return models.PropertyDetails{
		PeakSeasonStartDate:             start,
		PeakSeasonEndDate:               end,
		PeakSeasonAllottedNights:        r.PeakSeasonAllottedNights,
		OffSeasonAllottedNights:         r.OffSeasonAllottedNights,
		PeakSeasonAllottedHolidayNights: r.PeakSeasonAllottedHolidayNights,
		OffSeasonAllottedHolidayNights:  r.OffSeasonAllottedHolidayNights,
		LastMinuteBookingAllottedNights: r.LastMinuteBookingAllottedNights,
		BookingRules:                    r.BookingRules,
	}, nil
}

type PropertyDetailsResponse struct {
	ID                              uint           `json:"id"`
	PropertyID                      uint           `json:"propertyId"`
	PeakSeasonStartDate             string         `json:"peakSeasonStartDate"`
	PeakSeasonEndDate               string         `json:"peakSeasonEndDate"`
	PeakSeasonAllottedNights        int            `json:"peakSeasonAllottedNights"`
	OffSeasonAllottedNights         int            `json:"offSeasonAllottedNights"`
	PeakSeasonAllottedHolidayNights int            `json:"peakSeasonAllottedHolidayNights"`
	OffSeasonAllottedHolidayNights  int            `json:"offSeasonAllottedHolidayNights"`
	LastMinuteBookingAllottedNights int            `json:"lastMinuteBookingAllottedNights"`
	BookingRules                    datatypes.JSON `json:"bookingRules,omitempty"`
}

func ToPropertyDetailsResponse(d *models.PropertyDetails) *PropertyDetailsResponse {
	if d == nil {
		return nil
	}
	return &PropertyDetailsResponse{
		ID:                              d.ID,
		PropertyID:                      d.PropertyID,
		PeakSeasonStartDate:             utils.FormatDate(d.PeakSeasonStartDate),
		PeakSeasonEndDate:               utils.FormatDate(d.PeakSeasonEndDate),
		PeakSeasonAllottedNights:        d.PeakSeasonAllottedNights,
		OffSeasonAllottedNights:         d.OffSeasonAllottedNights,
		PeakSeasonAllottedHolidayNights: d.PeakSeasonAllottedHolidayNights,
		OffSeasonAllottedHolidayNights:  d.OffSeasonAllottedHolidayNights,
		LastMinuteBookingAllottedNights: d.LastMinuteBookingAllottedNights,
		BookingRules:                    d.BookingRules,
	}
}

type PropertyResponse struct {
	ID                     uint                     `json:"id"`
	Name                   string                   `json:"name"`
	Address                string                   `json:"address"`
	ShortDescription       string                   `json:"shortDescription"`
	Description            string                   `json:"description"`
	Avatar                 string                   `json:"avatar"`
	PropertyShare          int                      `json:"propertyShare"`
	PropertyRemainingShare int                      `json:"propertyRemainingShare"`
	Status                 int                      `json:"status"`
	Details                *PropertyDetailsResponse `json:"details,omitempty"`
	Amenities              []models.Amenity         `json:"amenities"`
	Documents              []models.Document        `json:"documents,omitempty"`
}

func ToPropertyResponse(p models.Property) PropertyResponse {
	amenities := p.Amenities
	if amenities == nil {
		amenities = []models.Amenity{}
	}
	return PropertyResponse{
		ID:                     p.ID,
		Name:                   p.Name,
		Address:                p.Address,
		ShortDescription:       p.ShortDescription,
		Description:            p.Description,
		Avatar:                 p.Avatar,
		PropertyShare:          p.PropertyShare,
		PropertyRemainingShare: p.PropertyRemainingShare,
		Status:                 p.Status,
		Details:                ToPropertyDetailsResponse(p.Details),
		Amenities:              amenities,
		Documents:              p.Documents,
	}
}

func ToPropertyResponses(list []models.Property) []PropertyResponse {
	res := make([]PropertyResponse, 0, len(list))
	for _, p := range list {
		res = append(res, ToPropertyResponse(p))
	}
	return res
}
