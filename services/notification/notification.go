// Package notification gửi thông báo booking qua websocket, Kafka và email,
// đồng thời lưu lại thông báo cho từng người dùng.
package notification

import (
	"fmt"

	"propshare/models"
	"propshare/utils"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Các loại sự kiện booking
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
)

type Service interface {
	SendMessage(message string) error
}

// MelodyService broadcast tới mọi kết nối websocket
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// Message là payload gửi qua websocket và Kafka
type Message struct {
	Type         string `json:"type"`
	BookingID    uint   `json:"bookingId"`
	UserID       uint   `json:"userId"`
	PropertyID   uint   `json:"propertyId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Nights       int    `json:"nights"`
	LastMinute   bool   `json:"lastMinute"`
	LateCancel   bool   `json:"lateCancel,omitempty"`
	Text         string `json:"text"`
}

type MessageBuilder struct {
	event   string
	booking *models.Booking
}

func NewMessageBuilder(event string, booking *models.Booking) *MessageBuilder {
	return &MessageBuilder{
		event:   event,
		booking: booking,
	}
}

func (b *MessageBuilder) Text() string {
	bk := b.booking
	checkIn := utils.FormatDate(bk.CheckInDate)
	checkOut := utils.FormatDate(bk.CheckOutDate)
	switch b.event {
	case EventBookingConfirmed:
		return fmt.Sprintf("🔔 Booking #%d đã được xác nhận: %s - %s (%d đêm).", bk.ID, checkIn, checkOut, bk.Nights)
	case EventBookingCancelled:
		if bk.LateCancel {
			return fmt.Sprintf("🔔 Booking #%d đã bị hủy muộn, %d đêm không được hoàn lại.", bk.ID, bk.Nights)
		}
		return fmt.Sprintf("🔔 Booking #%d đã được hủy, %d đêm đã được hoàn lại.", bk.ID, bk.Nights)
	case EventBookingCompleted:
		return fmt.Sprintf("🔔 Booking #%d đã hoàn thành. Cảm ơn bạn đã lưu trú!", bk.ID)
	}
	return fmt.Sprintf("🔔 Booking #%d cập nhật.", bk.ID)
}

func (b *MessageBuilder) Build() Message {
	bk := b.booking
	return Message{
		Type:         b.event,
		BookingID:    bk.ID,
		UserID:       bk.UserID,
		PropertyID:   bk.PropertyID,
		CheckInDate:  utils.FormatDate(bk.CheckInDate),
		CheckOutDate: utils.FormatDate(bk.CheckOutDate),
		Nights:       bk.Nights,
		LastMinute:   bk.LastMinute,
		LateCancel:   bk.LateCancel,
		Text:         b.Text(),
	}
}

func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}
