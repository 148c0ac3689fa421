package controllers

import (
	"propshare/dto"
	"propshare/response"
	"propshare/services"

	"github.com/gin-gonic/gin"
)

type PropertyController struct {
	Properties *services.PropertyService
}

func NewPropertyController(properties *services.PropertyService) *PropertyController {
	return &PropertyController{Properties: properties}
}

// ListProperties trả về danh sách bất động sản, hỗ trợ tìm kiếm gần đúng qua q
func (ctrl *PropertyController) ListProperties(c *gin.Context) {
	var query dto.PropertyListQuery
	if !bindQuery(c, &query) {
		return
	}
	page, limit := query.Normalize()
	properties, total, err := ctrl.Properties.List(c.Request.Context(), services.PropertyFilter{
		Name:   query.Name,
		Query:  query.Q,
		Status: query.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, dto.ToPropertyResponses(properties), page, limit, total)
}

func (ctrl *PropertyController) GetProperty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	property, err := ctrl.Properties.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToPropertyResponse(*property))
}

func toPropertyInput(req dto.PropertyRequest) services.PropertyInput {
	return services.PropertyInput{
		Name:             req.Name,
		Address:          req.Address,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Avatar:           req.Avatar,
		PropertyShare:    req.PropertyShare,
		Status:           req.Status,
		AmenityIDs:       req.AmenityIDs,
	}
}

func (ctrl *PropertyController) CreateProperty(c *gin.Context) {
	var req dto.PropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	property, err := ctrl.Properties.Create(c.Request.Context(), toPropertyInput(req))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.ToPropertyResponse(*property))
}

func (ctrl *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.PropertyRequest
	if !bindJSON(c, &req) {
		return
	}
	property, err := ctrl.Properties.Update(c.Request.Context(), id, toPropertyInput(req))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToPropertyResponse(*property))
}

func (ctrl *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Properties.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// UpsertDetails tạo hoặc cập nhật mùa cao điểm, số đêm cơ bản và rule đặt phòng
func (ctrl *PropertyController) UpsertDetails(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.PropertyDetailsRequest
	if !bindJSON(c, &req) {
		return
	}
	details, err := req.ToModel()
	if err != nil {
		response.FromError(c, invalidDate("peakSeasonStartDate"))
		return
	}
	saved, err := ctrl.Properties.UpsertDetails(c.Request.Context(), id, details)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToPropertyDetailsResponse(saved))
}

func (ctrl *PropertyController) SetAmenities(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.PropertyAmenitiesRequest
	if !bindJSON(c, &req) {
		return
	}
	property, err := ctrl.Properties.SetAmenities(c.Request.Context(), id, req.AmenityIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToPropertyResponse(*property))
}
