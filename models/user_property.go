package models

import (
	"fmt"
	"time"

	"propshare/types"
)

// NightBucket là bộ đếm đêm của một bucket trong một năm.
// Luôn giữ Allotted == Remaining + Booked + Used + Lost;
// Cancelled chỉ cộng dồn số đêm đã được trả lại do hủy sớm.
type NightBucket struct {
	Allotted  int `json:"allotted" gorm:"not null;default:0"`
	Used      int `json:"used" gorm:"not null;default:0"`
	Booked    int `json:"booked" gorm:"not null;default:0"`
	Cancelled int `json:"cancelled" gorm:"not null;default:0"`
	Lost      int `json:"lost" gorm:"not null;default:0"`
	Remaining int `json:"remaining" gorm:"not null;default:0"`
}

// Grant đặt số đêm được cấp ban đầu
func (n *NightBucket) Grant(nights int) {
	n.Allotted = nights
	n.Remaining = nights
}

func (n NightBucket) Balanced() bool {
	return n.Allotted == n.Remaining+n.Booked+n.Used+n.Lost
}

// UserProperty là phần sở hữu của một lần mua cổ phần cho một năm
type UserProperty struct {
	ID                uint        `json:"id" gorm:"primaryKey"`
	UserID            uint        `json:"userId" gorm:"index;not null"`
	PropertyID        uint        `json:"propertyId" gorm:"index;not null"`
	AcquisitionID     string      `json:"acquisitionId" gorm:"size:36;not null;uniqueIndex:idx_acquisition_year"`
	NoOfShare         int         `json:"noOfShare" gorm:"not null"`
	AcquisitionDate   time.Time   `json:"acquisitionDate"`
	Year              int         `json:"year" gorm:"not null;index;uniqueIndex:idx_acquisition_year"`
	MaximumStayLength int         `json:"maximumStayLength"`
	CreatedBy         uint        `json:"createdBy"`
	PeakSeason        NightBucket `json:"peakSeason" gorm:"embedded;embeddedPrefix:peak_"`
	OffSeason         NightBucket `json:"offSeason" gorm:"embedded;embeddedPrefix:off_"`
	PeakHoliday       NightBucket `json:"peakHoliday" gorm:"embedded;embeddedPrefix:peak_holiday_"`
	OffHoliday        NightBucket `json:"offHoliday" gorm:"embedded;embeddedPrefix:off_holiday_"`
	LastMinute        NightBucket `json:"lastMinute" gorm:"embedded;embeddedPrefix:last_minute_"`
	Property          *Property   `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Bucket trả về con trỏ tới bộ đếm của bucket
func (u *UserProperty) Bucket(bucket types.Bucket) *NightBucket {
	switch bucket {
	case types.BucketPeak:
		return &u.PeakSeason
	case types.BucketOff:
		return &u.OffSeason
	case types.BucketPeakHoliday:
		return &u.PeakHoliday
	case types.BucketOffHoliday:
		return &u.OffHoliday
	case types.BucketLastMinute:
		return &u.LastMinute
	}
	return nil
}

// Balanced kiểm tra bất biến của tất cả bucket
func (u *UserProperty) Balanced() bool {
	for _, b := range types.AllBuckets {
		if !u.Bucket(b).Balanced() {
			return false
		}
	}
	return true
}

// HasActivity cho biết đã có đêm nào được đặt, dùng hoặc mất chưa
func (u *UserProperty) HasActivity() bool {
	for _, b := range types.AllBuckets {
		n := u.Bucket(b)
		if n.Booked > 0 || n.Used > 0 || n.Lost > 0 || n.Cancelled > 0 {
			return true
		}
	}
	return false
}

// BucketColumn trả về tên cột của trường field trong bucket, vd ("peak_holiday", "remaining") -> "peak_holiday_remaining"
func BucketColumn(bucket types.Bucket, field string) string {
	return fmt.Sprintf("%s_%s", bucket, field)
}
