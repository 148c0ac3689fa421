package models

import "time"

// Document là tài liệu của bất động sản (sổ, hợp đồng, hình ảnh) lưu trên Cloudinary
type Document struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PropertyID  uint      `json:"propertyId" gorm:"index;not null"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	PublicID    string    `json:"publicId" gorm:"uniqueIndex"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedBy  uint      `json:"uploadedBy"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
