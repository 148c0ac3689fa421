package dto

import (
	"time"

	"propshare/models"
)

// UserResponse định nghĩa response cho user
type UserResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        int       `json:"role"`
	Status      int       `json:"status"`
	IsVerified  bool      `json:"isVerified"`
	Avatar      string    `json:"avatar,omitempty"`
	Gender      int       `json:"gender"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		Status:      user.Status,
		IsVerified:  user.IsVerified,
		Avatar:      user.Avatar,
		Gender:      user.Gender,
		DateOfBirth: user.DateOfBirth,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func ToUserResponses(users []models.User) []UserResponse {
	res := make([]UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, ToUserResponse(u))
	}
	return res
}

type UserListQuery struct {
	PageQuery
	Name   string `form:"name"`
	Email  string `form:"email"`
	Role   int    `form:"role"`
	Status *int   `form:"status" binding:"omitempty,oneof=0 1"`
}

// UpdateUserRequest chỉ cập nhật các field được gửi lên
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,vnphone"`
	Avatar      *string `json:"avatar"`
	Gender      *int    `json:"gender" binding:"omitempty,oneof=0 1 2"`
	DateOfBirth *string `json:"dateOfBirth" binding:"omitempty,ddmmyyyy"`
}

type UserRoleRequest struct {
	Role int `json:"role" binding:"required"`
}

type RoleRequest struct {
	ID          int    `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
