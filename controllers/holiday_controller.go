package controllers

import (
	"propshare/dto"
	"propshare/response"
	"propshare/services"

	"github.com/gin-gonic/gin"
)

type HolidayController struct {
	Holidays *services.HolidayService
}

func NewHolidayController(holidays *services.HolidayService) *HolidayController {
	return &HolidayController{Holidays: holidays}
}

// GetHolidays lấy danh sách kỳ nghỉ, lọc theo tên, bất động sản và khoảng ngày
func (ctrl *HolidayController) GetHolidays(c *gin.Context) {
	var query dto.HolidayListQuery
	if !bindQuery(c, &query) {
		return
	}
	page, limit := query.Normalize()

	fromDate, ok := optionalDate(c, "fromDate", query.FromDate)
	if !ok {
		return
	}
	toDate, ok := optionalDate(c, "toDate", query.ToDate)
	if !ok {
		return
	}

	holidays, total, err := ctrl.Holidays.List(c.Request.Context(), services.HolidayFilter{
		Name:       query.Name,
		PropertyID: query.PropertyID,
		FromDate:   fromDate,
		ToDate:     toDate,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	res := make([]dto.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		res = append(res, dto.ToHolidayResponse(h))
	}
	response.SuccessWithPagination(c, res, page, limit, int(total))
}

func (ctrl *HolidayController) GetDetailHoliday(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	holiday, err := ctrl.Holidays.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToHolidayResponse(*holiday))
}

// CreateHoliday tạo một kỳ nghỉ mới
func (ctrl *HolidayController) CreateHoliday(c *gin.Context) {
	var req dto.HolidayRequest
	if !bindJSON(c, &req) {
		return
	}
	holiday, err := req.ToModel()
	if err != nil {
		response.FromError(c, invalidDate("fromDate"))
		return
	}
	created, err := ctrl.Holidays.Create(c.Request.Context(), holiday)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.ToHolidayResponse(*created))
}

func (ctrl *HolidayController) UpdateHoliday(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.HolidayRequest
	if !bindJSON(c, &req) {
		return
	}
	holiday, err := req.ToModel()
	if err != nil {
		response.FromError(c, invalidDate("fromDate"))
		return
	}
	updated, err := ctrl.Holidays.Update(c.Request.Context(), id, holiday)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToHolidayResponse(*updated))
}

func (ctrl *HolidayController) DeleteHoliday(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Holidays.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
