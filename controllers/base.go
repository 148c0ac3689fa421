package controllers

import (
	"strconv"
	"time"

	apperrors "propshare/errors"
	"propshare/middleware"
	"propshare/response"
	"propshare/utils"
	"propshare/validator"

	"github.com/gin-gonic/gin"
)

// bindJSON bind body và trả lỗi validation theo từng field
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.FromError(c, validator.Translate(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.FromError(c, validator.Translate(err))
		return false
	}
	return true
}

// paramID đọc id dương từ path param
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

// currentUser lấy user đã xác thực, trả 401 nếu không có
func currentUser(c *gin.Context) (uint, int, bool) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return 0, 0, false
	}
	return userID, role, true
}

func invalidDate(field string) error {
	return apperrors.Validation("Dữ liệu không hợp lệ", map[string]any{field: "ngày phải có dạng dd/mm/yyyy"})
}

// optionalDate đọc ngày dd/mm/yyyy từ query; rỗng thì trả về zero time
func optionalDate(c *gin.Context, field, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		response.FromError(c, invalidDate(field))
		return time.Time{}, false
	}
	return t, true
}
