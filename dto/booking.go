package dto

import (
	"time"

	"propshare/models"
	"propshare/services/booking"
	"propshare/types"
	"propshare/utils"
)

// BookingRequest dùng cho cả xem trước và tạo booking, ngày dạng dd/mm/yyyy.
// UserID chỉ admin được gửi để đặt hộ chủ sở hữu.
type BookingRequest struct {
	UserID       uint   `json:"userId"`
	PropertyID   uint   `json:"propertyId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required,ddmmyyyy"`
	CheckOutDate string `json:"checkOutDate" binding:"required,ddmmyyyy"`
	Guests       int    `json:"guests" binding:"min=0"`
	Pets         int    `json:"pets" binding:"min=0"`
	Note         string `json:"note" binding:"max=500"`
}

func (r BookingRequest) ToCreateRequest(userID uint) (booking.CreateRequest, error) {
	checkIn, err := utils.ParseDate(r.CheckInDate)
	if err != nil {
		return booking.CreateRequest{}, err
	}
	checkOut, err := utils.ParseDate(r.CheckOutDate)
	if err != nil {
		return booking.CreateRequest{}, err
	}
	return booking.CreateRequest{
		UserID:     userID,
		PropertyID: r.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     r.Guests,
		Pets:       r.Pets,
		Note:       r.Note,
	}, nil
}

type BookingListQuery struct {
	PageQuery
	UserID     uint   `form:"userId"`
	PropertyID uint   `form:"propertyId"`
	Status     int    `form:"status" binding:"omitempty,oneof=1 2 3"`
	FromDate   string `form:"fromDate" binding:"omitempty,ddmmyyyy"`
	ToDate     string `form:"toDate" binding:"omitempty,ddmmyyyy"`
}

type BookingAllocationResponse struct {
	UserPropertyID uint         `json:"userPropertyId"`
	Year           int          `json:"year"`
	Bucket         types.Bucket `json:"bucket"`
	Nights         int          `json:"nights"`
}

type BookingResponse struct {
	ID           uint                        `json:"id"`
	UserID       uint                        `json:"userId"`
	User         *types.BookingUserResponse  `json:"user,omitempty"`
	PropertyID   uint                        `json:"propertyId"`
	PropertyName string                      `json:"propertyName,omitempty"`
	CheckInDate  string                      `json:"checkInDate"`
	CheckOutDate string                      `json:"checkOutDate"`
	Nights       int                         `json:"nights"`
	Guests       int                         `json:"guests"`
	Pets         int                         `json:"pets"`
	LastMinute   bool                        `json:"lastMinute"`
	Status       int                         `json:"status"`
	Note         string                      `json:"note,omitempty"`
	LateCancel   bool                        `json:"lateCancel"`
	CancelledAt  *time.Time                  `json:"cancelledAt,omitempty"`
	CompletedAt  *time.Time                  `json:"completedAt,omitempty"`
	Allocations  []BookingAllocationResponse `json:"allocations"`
	CreatedAt    time.Time                   `json:"createdAt"`
}

func ToBookingResponse(b models.Booking) BookingResponse {
	res := BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		PropertyID:   b.PropertyID,
		CheckInDate:  utils.FormatDate(b.CheckInDate),
		CheckOutDate: utils.FormatDate(b.CheckOutDate),
		Nights:       b.Nights,
		Guests:       b.Guests,
		Pets:         b.Pets,
		LastMinute:   b.LastMinute,
		Status:       b.Status,
		Note:         b.Note,
		LateCancel:   b.LateCancel,
		CancelledAt:  b.CancelledAt,
		CompletedAt:  b.CompletedAt,
		Allocations:  make([]BookingAllocationResponse, 0, len(b.Allocations)),
		CreatedAt:    b.CreatedAt,
	}
	if b.User != nil {
		res.User = &types.BookingUserResponse{
			ID:          b.User.ID,
			Name:        b.User.Name,
			Email:       b.User.Email,
			PhoneNumber: b.User.PhoneNumber,
		}
	}
	if b.Property != nil {
		res.PropertyName = b.Property.Name
	}
	for _, a := range b.Allocations {
		res.Allocations = append(res.Allocations, BookingAllocationResponse{
			UserPropertyID: a.UserPropertyID,
			Year:           a.Year,
			Bucket:         a.Bucket,
			Nights:         a.Nights,
		})
	}
	return res
}

func ToBookingResponses(list []models.Booking) []BookingResponse {
	res := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		res = append(res, ToBookingResponse(b))
	}
	return res
}
