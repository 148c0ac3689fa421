package controllers

import (
	"propshare/dto"
	"propshare/middleware"
	"propshare/response"
	"propshare/services/allocation"

	"github.com/gin-gonic/gin"
)

type UserPropertyController struct {
	Allocator *allocation.Allocator
}

func NewUserPropertyController(allocator *allocation.Allocator) *UserPropertyController {
	return &UserPropertyController{Allocator: allocator}
}

// Allocate ghi nhận các lần mua cổ phần và sinh số đêm cho năm hiện tại và các năm tới
func (ctrl *UserPropertyController) Allocate(c *gin.Context) {
	adminID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AllocateRequest
	if !bindJSON(c, &req) {
		return
	}
	allocReq, err := req.ToRequest(adminID)
	if err != nil {
		response.FromError(c, invalidDate("acquisitionDate"))
		return
	}
	rows, err := ctrl.Allocator.Allocate(c.Request.Context(), allocReq)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.ToUserPropertyResponses(rows))
}

// ListUserProperties: chủ sở hữu chỉ xem được của mình, admin xem theo userId
func (ctrl *UserPropertyController) ListUserProperties(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var query dto.UserPropertyQuery
	if !bindQuery(c, &query) {
		return
	}
	filter := allocation.ListFilter{UserID: userID, PropertyID: query.PropertyID, Year: query.Year}
	if middleware.IsAdmin(c) {
		filter.UserID = query.UserID
	}
	rows, err := ctrl.Allocator.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToUserPropertyResponses(rows))
}

// RemoveAcquisition xóa mọi dòng của một lần mua và trả cổ phần về bất động sản
func (ctrl *UserPropertyController) RemoveAcquisition(c *gin.Context) {
	acquisitionID := c.Param("acquisitionId")
	if acquisitionID == "" {
		response.BadRequest(c, "Thiếu mã lần mua")
		return
	}
	if err := ctrl.Allocator.Remove(c.Request.Context(), acquisitionID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
