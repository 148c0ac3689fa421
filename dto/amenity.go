package dto

import "propshare/models"

type AmenityListQuery struct {
	PageQuery
	Name   string `form:"name"`
	Status *int   `form:"status" binding:"omitempty,oneof=0 1"`
}

type AmenityRequest struct {
	Name   string `json:"name" binding:"required"`
	Icon   string `json:"icon"`
	Status int    `json:"status" binding:"oneof=0 1"`
}

func (r AmenityRequest) ToModel() models.Amenity {
	return models.Amenity{Name: r.Name, Icon: r.Icon, Status: r.Status}
}

// AmenityBatchRequest tạo nhiều tiện ích một lần
type AmenityBatchRequest struct {
	Amenities []AmenityRequest `json:"amenities" binding:"required,min=1,dive"`
}
