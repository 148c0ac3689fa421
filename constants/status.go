package constants

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// Property status
const (
	PropertyStatusHidden = 0
	PropertyStatusActive = 1
)

// Amenity status
const (
	AmenityStatusInactive = 0
	AmenityStatusActive   = 1
)

// Roles (id trong bảng roles, cũng là role trong token)
const (
	RoleAdmin = 1
	RoleOwner = 2
	RoleStaff = 3
)

// Cache keys
const (
	CacheKeyProperties = "properties:all"
	CacheKeyAmenities  = "amenities:all"
	CacheKeyRoles      = "roles:all"
)
