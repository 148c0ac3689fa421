package utils

import (
	"strings"
	"time"
)

// DateLayout là định dạng ngày dùng trong request/response
const DateLayout = "02/01/2006"

// ParseDate parse chuỗi ngày dạng dd/mm/yyyy về UTC 00:00
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatDate format ngày về dạng dd/mm/yyyy
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DateOnly bỏ phần giờ, giữ lại ngày theo lịch của t
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween trả về số ngày lịch từ a đến b (âm nếu b trước a)
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// EndOfYear trả về ngày 31/12 của năm
func EndOfYear(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// ProjectToYear đặt ngày/tháng của t vào năm year.
// 29/02 được chuyển về 28/02 nếu năm đích không nhuận.
func ProjectToYear(t time.Time, year int) time.Time {
	day := t.Day()
	if t.Month() == time.February && day == 29 {
		if time.Date(year, time.February, 29, 0, 0, 0, 0, time.UTC).Month() != time.February {
			day = 28
		}
	}
	return time.Date(year, t.Month(), day, 0, 0, 0, 0, time.UTC)
}

// MonthDay mã hóa ngày/tháng thành số để so sánh, vd 15/07 -> 715
func MonthDay(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}

// NightsOf trả về danh sách các đêm của kỳ lưu trú [checkIn, checkOut)
func NightsOf(checkIn, checkOut time.Time) []time.Time {
	n := DaysBetween(checkIn, checkOut)
	if n <= 0 {
		return nil
	}
	start := DateOnly(checkIn)
	nights := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		nights = append(nights, start.AddDate(0, 0, i))
	}
	return nights
}
