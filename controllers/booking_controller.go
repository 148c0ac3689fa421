package controllers

import (
	"time"

	"propshare/dto"
	apperrors "propshare/errors"
	"propshare/middleware"
	"propshare/response"
	"propshare/services/booking"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *booking.Facade
}

func NewBookingController(bookings *booking.Facade) *BookingController {
	return &BookingController{Bookings: bookings}
}

// bookingRequest đọc body và xác định chủ sở hữu: admin có thể đặt hộ qua userId
func (ctrl *BookingController) bookingRequest(c *gin.Context) (booking.CreateRequest, bool) {
	userID, _, ok := currentUser(c)
	if !ok {
		return booking.CreateRequest{}, false
	}
	var req dto.BookingRequest
	if !bindJSON(c, &req) {
		return booking.CreateRequest{}, false
	}
	if req.UserID != 0 && middleware.IsAdmin(c) {
		userID = req.UserID
	}
	createReq, err := req.ToCreateRequest(userID)
	if err != nil {
		response.FromError(c, invalidDate("checkInDate"))
		return booking.CreateRequest{}, false
	}
	return createReq, true
}

// PreviewBooking tính số đêm theo bucket mà không ghi gì
func (ctrl *BookingController) PreviewBooking(c *gin.Context) {
	req, ok := ctrl.bookingRequest(c)
	if !ok {
		return
	}
	quote, err := ctrl.Bookings.Preview(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, quote)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	req, ok := ctrl.bookingRequest(c)
	if !ok {
		return
	}
	created, err := ctrl.Bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.ToBookingResponse(*created))
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var query dto.BookingListQuery
	if !bindQuery(c, &query) {
		return
	}
	page, limit := query.Normalize()

	filter := booking.ListFilter{
		UserID:     userID,
		PropertyID: query.PropertyID,
		Status:     query.Status,
		Page:       page,
		Limit:      limit,
	}
	if middleware.IsAdmin(c) {
		filter.UserID = query.UserID
	}
	if filter.FromDate, ok = optionalDate(c, "fromDate", query.FromDate); !ok {
		return
	}
	if filter.ToDate, ok = optionalDate(c, "toDate", query.ToDate); !ok {
		return
	}

	bookings, total, err := ctrl.Bookings.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.ToBookingResponses(bookings), page, limit, int(total))
}

func (ctrl *BookingController) GetBookingDetail(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := ctrl.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if b.UserID != userID && !middleware.IsAdmin(c) {
		response.FromError(c, apperrors.Forbidden(apperrors.ErrCodeNotOwner, "Bạn không có quyền xem booking này"))
		return
	}
	response.Success(c, dto.ToBookingResponse(*b))
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := ctrl.Bookings.CancelBooking(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(*b))
}

// CompleteBooking cho admin hoàn tất booking trước khi job chạy
func (ctrl *BookingController) CompleteBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := ctrl.Bookings.CompleteBooking(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToBookingResponse(*b))
}

// CompleteFinished hoàn tất mọi booking đã qua ngày trả phòng
func (ctrl *BookingController) CompleteFinished(c *gin.Context) {
	count, err := ctrl.Bookings.CompleteFinished(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"completed": count, "at": time.Now().UTC()})
}
