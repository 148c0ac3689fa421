package models

import (
	"errors"
	"time"
)

var (
	ErrBookingCancelled = errors.New("booking already cancelled")
	ErrBookingCompleted = errors.New("booking already completed")
)

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Cancel(booking *Booking, at time.Time) error
	Complete(booking *Booking, at time.Time) error
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Cancel(booking *Booking, at time.Time) error {
	booking.Status = BookingStatusCancelled
	booking.CancelledAt = &at
	return nil
}

func (s *ConfirmedState) Complete(booking *Booking, at time.Time) error {
	booking.Status = BookingStatusCompleted
	booking.CompletedAt = &at
	return nil
}

// CompletedState trạng thái hoàn thành
type CompletedState struct{}

func (s *CompletedState) Cancel(booking *Booking, at time.Time) error {
	return ErrBookingCompleted
}

func (s *CompletedState) Complete(booking *Booking, at time.Time) error {
	return ErrBookingCompleted
}

// CancelledState trạng thái đã hủy
type CancelledState struct{}

func (s *CancelledState) Cancel(booking *Booking, at time.Time) error {
	return ErrBookingCancelled
}

func (s *CancelledState) Complete(booking *Booking, at time.Time) error {
	return ErrBookingCancelled
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status int) BookingState {
	switch status {
	case BookingStatusCompleted:
		return &CompletedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &ConfirmedState{}
	}
}
