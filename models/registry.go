package models

// All trả về danh sách model cần AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Amenity{},
		&Property{},
		&PropertyDetails{},
		&Document{},
		&Holiday{},
		&UserProperty{},
		&Booking{},
		&BookingAllocation{},
		&Notification{},
	}
}
