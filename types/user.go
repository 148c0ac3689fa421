package types

// BookingUserResponse là thông tin rút gọn của chủ sở hữu trong booking
type BookingUserResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}
