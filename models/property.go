package models

import (
	"fmt"
	"time"

	"propshare/rules"
	"propshare/types"
	"propshare/utils"

	"gorm.io/datatypes"
)

type Property struct {
	ID                     uint             `json:"id" gorm:"primaryKey"`
	Name                   string           `json:"name" gorm:"not null"`
	Address                string           `json:"address"`
	ShortDescription       string           `json:"shortDescription"`
	Description            string           `json:"description"`
	Avatar                 string           `json:"avatar"`
	PropertyShare          int              `json:"propertyShare" gorm:"not null;default:0"`          // Tổng số cổ phần
	PropertyRemainingShare int              `json:"propertyRemainingShare" gorm:"not null;default:0"` // Số cổ phần còn có thể bán
	Status                 int              `json:"status" gorm:"not null"`
	Details                *PropertyDetails `json:"details,omitempty" gorm:"foreignKey:PropertyID"`
	Amenities              []Amenity        `json:"amenities" gorm:"many2many:property_amenities;"`
	Documents              []Document       `json:"documents,omitempty" gorm:"foreignKey:PropertyID"`
	CreatedAt              time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt              time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Property) ValidateShares() error {
	if p.PropertyShare < 0 {
		return fmt.Errorf("invalid PropertyShare: %d, must not be negative", p.PropertyShare)
	}
	if p.PropertyRemainingShare < 0 || p.PropertyRemainingShare > p.PropertyShare {
		return fmt.Errorf("invalid PropertyRemainingShare: %d, must be between 0 and %d", p.PropertyRemainingShare, p.PropertyShare)
	}
	return nil
}

func (p *Property) ValidateStatus() error {
	if p.Status < 0 || p.Status > 1 {
		return fmt.Errorf("invalid Status: %d, must be either 0 or 1", p.Status)
	}
	return nil
}

// PropertyDetails chứa mùa cao điểm và số đêm cơ bản cho mỗi cổ phần
type PropertyDetails struct {
	ID                              uint           `json:"id" gorm:"primaryKey"`
	PropertyID                      uint           `json:"propertyId" gorm:"uniqueIndex;not null"`
	PeakSeasonStartDate             time.Time      `json:"peakSeasonStartDate"`
	PeakSeasonEndDate               time.Time      `json:"peakSeasonEndDate"`
	PeakSeasonAllottedNights        int            `json:"peakSeasonAllottedNights"`
	OffSeasonAllottedNights         int            `json:"offSeasonAllottedNights"`
	PeakSeasonAllottedHolidayNights int            `json:"peakSeasonAllottedHolidayNights"`
	OffSeasonAllottedHolidayNights  int            `json:"offSeasonAllottedHolidayNights"`
	LastMinuteBookingAllottedNights int            `json:"lastMinuteBookingAllottedNights"`
	BookingRules                    datatypes.JSON `json:"bookingRules"`
	CreatedAt                       time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt                       time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BaseNights trả về số đêm cơ bản (một cổ phần) của bucket
func (d *PropertyDetails) BaseNights(bucket types.Bucket) int {
	switch bucket {
	case types.BucketPeak:
		return d.PeakSeasonAllottedNights
	case types.BucketOff:
		return d.OffSeasonAllottedNights
	case types.BucketPeakHoliday:
		return d.PeakSeasonAllottedHolidayNights
	case types.BucketOffHoliday:
		return d.OffSeasonAllottedHolidayNights
	case types.BucketLastMinute:
		return d.LastMinuteBookingAllottedNights
	}
	return 0
}

// PeakSeasonEndIn chiếu ngày kết thúc mùa cao điểm vào năm year
func (d *PropertyDetails) PeakSeasonEndIn(year int) time.Time {
	return utils.ProjectToYear(d.PeakSeasonEndDate, year)
}

// InPeakSeason kiểm tra ngày có thuộc mùa cao điểm không.
// Chỉ so sánh ngày/tháng nên mùa vắt qua năm mới (vd 15/12 - 15/02) vẫn hợp lệ.
func (d *PropertyDetails) InPeakSeason(day time.Time) bool {
	if d.PeakSeasonStartDate.IsZero() || d.PeakSeasonEndDate.IsZero() {
		return false
	}
	start := utils.MonthDay(d.PeakSeasonStartDate)
	end := utils.MonthDay(d.PeakSeasonEndDate)
	md := utils.MonthDay(day)
	if start <= end {
		return md >= start && md <= end
	}
	return md >= start || md <= end
}

// Rules parse các rule đặt phòng đã lưu
func (d *PropertyDetails) Rules() ([]rules.Rule, error) {
	return rules.Parse(d.BookingRules)
}
