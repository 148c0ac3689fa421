// Package booking xử lý đặt phòng bằng số đêm của chủ sở hữu.
package booking

import (
	"sort"
	"time"

	"propshare/models"
	"propshare/types"
	"propshare/utils"
)

// Calendar phân loại từng đêm của một bất động sản
type Calendar struct {
	PropertyID uint
	Details    *models.PropertyDetails
	Holidays   []models.Holiday
}

// IsHoliday kiểm tra đêm có thuộc kỳ nghỉ nào áp dụng cho bất động sản không
func (c Calendar) IsHoliday(day time.Time) bool {
	for i := range c.Holidays {
		h := &c.Holidays[i]
		if h.AppliesTo(c.PropertyID) && h.Covers(day) {
			return true
		}
	}
	return false
}

// Classify trả về bucket (không tính last-minute) của một đêm
func (c Calendar) Classify(day time.Time) types.Bucket {
	peak := c.Details != nil && c.Details.InPeakSeason(day)
	holiday := c.IsHoliday(day)
	switch {
	case peak && holiday:
		return types.BucketPeakHoliday
	case peak:
		return types.BucketPeak
	case holiday:
		return types.BucketOffHoliday
	default:
		return types.BucketOff
	}
}

// Demand là số đêm cần theo năm và bucket
type Demand map[int]map[types.Bucket]int

func (d Demand) Add(year int, bucket types.Bucket, nights int) {
	if d[year] == nil {
		d[year] = map[types.Bucket]int{}
	}
	d[year][bucket] += nights
}

// Total là tổng số đêm
func (d Demand) Total() int {
	total := 0
	for _, buckets := range d {
		for _, n := range buckets {
			total += n
		}
	}
	return total
}

// Years trả về các năm theo thứ tự tăng dần
func (d Demand) Years() []int {
	years := make([]int, 0, len(d))
	for y := range d {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Line là một dòng của Demand dùng cho response
type Line struct {
	Year   int          `json:"year"`
	Bucket types.Bucket `json:"bucket"`
	Nights int          `json:"nights"`
}

// Lines liệt kê Demand theo năm rồi theo thứ tự bucket cố định
func (d Demand) Lines() []Line {
	var lines []Line
	for _, y := range d.Years() {
		for _, b := range types.AllBuckets {
			if n := d[y][b]; n > 0 {
				lines = append(lines, Line{Year: y, Bucket: b, Nights: n})
			}
		}
	}
	return lines
}

// NightsPerYear đếm số đêm của kỳ lưu trú theo năm của từng đêm
func NightsPerYear(nights []time.Time) map[int]int {
	out := map[int]int{}
	for _, n := range nights {
		out[n.Year()]++
	}
	return out
}

// IsLastMinute: ngày nhận phòng cách hôm nay không quá windowDays ngày
func IsLastMinute(checkIn, today time.Time, windowDays int) bool {
	days := utils.DaysBetween(today, checkIn)
	return days >= 0 && days <= windowDays
}
