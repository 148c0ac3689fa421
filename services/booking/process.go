package booking

import (
	"time"

	"propshare/models"
	"propshare/types"
)

// BookingProcess quyết định các đêm của booking được trừ vào bucket nào
type BookingProcess interface {
	Name() string
	LastMinute() bool
	Demand(nights []time.Time) Demand
}

// StandardBooking phân loại từng đêm theo mùa và kỳ nghỉ
type StandardBooking struct {
	calendar Calendar
}

func NewStandardBooking(calendar Calendar) *StandardBooking {
	return &StandardBooking{calendar: calendar}
}

func (b *StandardBooking) Name() string    { return "standard" }
func (b *StandardBooking) LastMinute() bool { return false }

func (b *StandardBooking) Demand(nights []time.Time) Demand {
	d := Demand{}
	for _, n := range nights {
		d.Add(n.Year(), b.calendar.Classify(n), 1)
	}
	return d
}

// LastMinuteBooking trừ toàn bộ đêm vào bucket last-minute
type LastMinuteBooking struct{}

func NewLastMinuteBooking() *LastMinuteBooking {
	return &LastMinuteBooking{}
}

func (b *LastMinuteBooking) Name() string    { return "last_minute" }
func (b *LastMinuteBooking) LastMinute() bool { return true }

func (b *LastMinuteBooking) Demand(nights []time.Time) Demand {
	d := Demand{}
	for year, n := range NightsPerYear(nights) {
		d.Add(year, types.BucketLastMinute, n)
	}
	return d
}

// ProcessInput là dữ liệu để chọn quy trình đặt phòng
type ProcessInput struct {
	Calendar   Calendar
	Rows       []models.UserProperty
	Nights     []time.Time
	Today      time.Time
	WindowDays int
}

// SelectProcess chọn last-minute khi ngày nhận phòng nằm trong cửa sổ
// và chủ sở hữu còn đủ đêm last-minute cho mọi năm của kỳ lưu trú.
func SelectProcess(in ProcessInput) BookingProcess {
	if len(in.Nights) == 0 || !IsLastMinute(in.Nights[0], in.Today, in.WindowDays) {
		return NewStandardBooking(in.Calendar)
	}
	available := map[int]int{}
	for i := range in.Rows {
		available[in.Rows[i].Year] += in.Rows[i].LastMinute.Remaining
	}
	for year, need := range NightsPerYear(in.Nights) {
		if available[year] < need {
			return NewStandardBooking(in.Calendar)
		}
	}
	return NewLastMinuteBooking()
}
