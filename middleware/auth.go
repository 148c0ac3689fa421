package middleware

import (
	"strings"

	"propshare/constants"
	"propshare/response"
	"propshare/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware xác thực access token và kiểm tra role nếu có yêu cầu.
// Websocket không gửi được header nên token cũng được đọc từ query "token".
func AuthMiddleware(tokens *services.TokenManager, roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		userID, userRole, err := tokens.ParseToken(tokenString)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(userRole, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		// Lưu thông tin user vào context
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, userRole)
		c.Next()
	}
}

// RoleMiddleware kiểm tra role của user
func RoleMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRole)
		if !exists {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		role, _ := userRole.(int)
		if !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func hasRole(role int, roles []int) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentUser trả về userID và role đã được AuthMiddleware gán
func CurrentUser(c *gin.Context) (uint, int, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return 0, 0, false
	}
	userID, ok := id.(uint)
	if !ok {
		return 0, 0, false
	}
	role, _ := c.Get(ContextUserRole)
	userRole, _ := role.(int)
	return userID, userRole, true
}

// IsAdmin kiểm tra user hiện tại có phải admin không
func IsAdmin(c *gin.Context) bool {
	_, role, ok := CurrentUser(c)
	return ok && role == constants.RoleAdmin
}

// ErrorHandler xử lý lỗi controller gắn vào c.Error mà chưa trả response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
