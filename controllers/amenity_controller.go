package controllers

import (
	"propshare/dto"
	"propshare/models"
	"propshare/response"
	"propshare/services"

	"github.com/gin-gonic/gin"
)

type AmenityController struct {
	Amenities *services.AmenityService
}

func NewAmenityController(amenities *services.AmenityService) *AmenityController {
	return &AmenityController{Amenities: amenities}
}

func (ctrl *AmenityController) GetAllAmenities(c *gin.Context) {
	var query dto.AmenityListQuery
	if !bindQuery(c, &query) {
		return
	}
	page, limit := query.Normalize()
	amenities, total, err := ctrl.Amenities.List(c.Request.Context(), services.AmenityFilter{
		Name:   query.Name,
		Status: query.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, amenities, page, limit, total)
}

func (ctrl *AmenityController) GetAmenityDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	amenity, err := ctrl.Amenities.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, amenity)
}

func (ctrl *AmenityController) CreateAmenity(c *gin.Context) {
	var req dto.AmenityRequest
	if !bindJSON(c, &req) {
		return
	}
	amenity, err := ctrl.Amenities.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, amenity)
}

// CreateAmenities tạo nhiều tiện ích, lỗi ở một phần tử thì không tạo gì
func (ctrl *AmenityController) CreateAmenities(c *gin.Context) {
	var req dto.AmenityBatchRequest
	if !bindJSON(c, &req) {
		return
	}
	list := make([]models.Amenity, 0, len(req.Amenities))
	for _, a := range req.Amenities {
		list = append(list, a.ToModel())
	}
	created, err := ctrl.Amenities.CreateBatch(c.Request.Context(), list)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, created)
}

func (ctrl *AmenityController) UpdateAmenity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.AmenityRequest
	if !bindJSON(c, &req) {
		return
	}
	amenity, err := ctrl.Amenities.Update(c.Request.Context(), id, req.Name, req.Icon)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, amenity)
}

func (ctrl *AmenityController) ChangeAmenityStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	amenity, err := ctrl.Amenities.UpdateStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, amenity)
}

func (ctrl *AmenityController) DeleteAmenity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Amenities.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
