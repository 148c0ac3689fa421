// Package allocation tính và ghi số đêm được cấp cho mỗi lần mua cổ phần.
package allocation

import (
	"time"

	"propshare/builders"
	"propshare/models"
	"propshare/types"
	"propshare/utils"
)

const (
	BaseStayLength           = 14
	StayLengthStepPerShare   = 7
	MaxStayLength            = 28
	LastMinuteNightsPerShare = 8
	// ForwardYears là số năm sau năm hiện tại được tạo sẵn khi mua cổ phần
	ForwardYears = 3
)

// Entry là một yêu cầu mua cổ phần
type Entry struct {
	PropertyID      uint
	NoOfShares      int
	AcquisitionDate time.Time
}

// IsLeapYear kiểm tra năm nhuận
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear trả về 366 với năm nhuận, ngược lại 365
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// AdjustedDaysInYear là mẫu số khi chia tỷ lệ, luôn trừ 1 ngày
func AdjustedDaysInYear(year int) int {
	return DaysInYear(year) - 1
}

// CalculateAllottedNights nhân số đêm cơ bản với số cổ phần
func CalculateAllottedNights(shares, baseNights int) int {
	return shares * baseNights
}

// MaximumStayLength = min(14 + (shares-1)*7, 28)
func MaximumStayLength(shares int) int {
	stay := BaseStayLength + (shares-1)*StayLengthStepPerShare
	if stay > MaxStayLength {
		return MaxStayLength
	}
	return stay
}

// LastMinuteNights là số đêm last-minute mỗi năm, không chia tỷ lệ
func LastMinuteNights(shares int) int {
	return LastMinuteNightsPerShare * shares
}

// RateNights chia tỷ lệ số đêm theo phần còn lại của năm hiện tại (năm của now).
// Ngày mua khác năm hiện tại thì giữ nguyên số đêm.
func RateNights(allotted int, acquisitionDate, now time.Time) int {
	year := now.Year()
	if acquisitionDate.Year() != year {
		return allotted
	}
	adjusted := AdjustedDaysInYear(year)
	daysRemaining := utils.DaysBetween(acquisitionDate, utils.EndOfYear(year))
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	if daysRemaining > adjusted {
		daysRemaining = adjusted
	}
	return allotted * daysRemaining / adjusted
}

// AcquiredAfterPeakSeason kiểm tra ngày mua có sau ngày kết thúc mùa cao điểm của năm hiện tại không
func AcquiredAfterPeakSeason(acquisitionDate time.Time, details *models.PropertyDetails, now time.Time) bool {
	if details.PeakSeasonEndDate.IsZero() {
		return false
	}
	peakEnd := details.PeakSeasonEndIn(now.Year())
	return utils.DateOnly(acquisitionDate).After(peakEnd)
}

// Plan là tham số chung để tạo các dòng sở hữu của một lần mua
type Plan struct {
	UserID        uint
	CreatedBy     uint
	AcquisitionID string
	Entry         Entry
	Details       *models.PropertyDetails
	Now           time.Time
}

// BuildRows tạo các dòng cho năm hiện tại và ForwardYears năm tiếp theo
func BuildRows(plan Plan) []models.UserProperty {
	currentYear := plan.Now.Year()
	rows := make([]models.UserProperty, 0, ForwardYears+1)
	for offset := 0; offset <= ForwardYears; offset++ {
		rows = append(rows, BuildRow(plan, currentYear+offset))
	}
	return rows
}

// BuildRow tạo dòng sở hữu cho một năm. Chỉ năm hiện tại bị chia tỷ lệ.
func BuildRow(plan Plan, year int) models.UserProperty {
	shares := plan.Entry.NoOfShares
	d := plan.Details

	peak := CalculateAllottedNights(shares, d.PeakSeasonAllottedNights)
	off := CalculateAllottedNights(shares, d.OffSeasonAllottedNights)
	peakHoliday := CalculateAllottedNights(shares, d.PeakSeasonAllottedHolidayNights)
	offHoliday := CalculateAllottedNights(shares, d.OffSeasonAllottedHolidayNights)

	if year == plan.Now.Year() {
		peak = RateNights(peak, plan.Entry.AcquisitionDate, plan.Now)
		off = RateNights(off, plan.Entry.AcquisitionDate, plan.Now)
		if AcquiredAfterPeakSeason(plan.Entry.AcquisitionDate, d, plan.Now) {
			peak = 0
			peakHoliday = 0
		}
	}

	return builders.NewUserPropertyBuilder().
		WithOwner(plan.UserID, plan.CreatedBy).
		WithProperty(plan.Entry.PropertyID).
		WithAcquisition(plan.AcquisitionID, shares, plan.Entry.AcquisitionDate).
		WithYear(year).
		WithMaximumStayLength(MaximumStayLength(shares)).
		WithNights(types.BucketPeak, peak).
		WithNights(types.BucketOff, off).
		WithNights(types.BucketPeakHoliday, peakHoliday).
		WithNights(types.BucketOffHoliday, offHoliday).
		WithNights(types.BucketLastMinute, LastMinuteNights(shares)).
		Build()
}
