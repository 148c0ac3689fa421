package models

import (
	"time"

	"propshare/types"
)

// Booking status constants
const (
	BookingStatusConfirmed = 1
	BookingStatusCompleted = 2
	BookingStatusCancelled = 3
)

type Booking struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	UserID       uint                `json:"userId" gorm:"index;not null"`
	User         *User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	PropertyID   uint                `json:"propertyId" gorm:"index;not null"`
	Property     *Property           `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	CheckInDate  time.Time           `json:"checkInDate" gorm:"index"`
	CheckOutDate time.Time           `json:"checkOutDate" gorm:"index"`
	Nights       int                 `json:"nights"`
	Guests       int                 `json:"guests"`
	Pets         int                 `json:"pets"`
	LastMinute   bool                `json:"lastMinute"`
	Status       int                 `json:"status" gorm:"index"`
	Note         string              `json:"note"`
	LateCancel   bool                `json:"lateCancel"` // Hủy muộn: số đêm bị mất
	CancelledAt  *time.Time          `json:"cancelledAt,omitempty"`
	CompletedAt  *time.Time          `json:"completedAt,omitempty"`
	Allocations  []BookingAllocation `json:"allocations" gorm:"foreignKey:BookingID"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BookingAllocation ghi lại số đêm của booking lấy từ bucket nào của dòng sở hữu nào
type BookingAllocation struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	BookingID      uint         `json:"bookingId" gorm:"index;not null"`
	UserPropertyID uint         `json:"userPropertyId" gorm:"index;not null"`
	Year           int          `json:"year"`
	Bucket         types.Bucket `json:"bucket" gorm:"size:20;not null"`
	Nights         int          `json:"nights"`
}
