package controllers

import (
	"propshare/dto"
	"propshare/response"
	"propshare/services/notification"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Store *notification.Store
	Hub   *notification.Hub
}

func NewNotificationController(store *notification.Store, hub *notification.Hub) *NotificationController {
	return &NotificationController{Store: store, Hub: hub}
}

// GetNotifications danh sách thông báo của user đang đăng nhập
func (ctrl *NotificationController) GetNotifications(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	var query dto.NotificationListQuery
	if !bindQuery(c, &query) {
		return
	}
	page, limit := query.Normalize()
	list, total, err := ctrl.Store.List(c.Request.Context(), userID, query.Unread, page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, list, page, limit, int(total))
}

func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Store.MarkRead(c.Request.Context(), userID, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	updated, err := ctrl.Store.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": updated})
}

// NotifyUser admin gửi thông báo cho một user, trả về số kết nối đã nhận
func (ctrl *NotificationController) NotifyUser(c *gin.Context) {
	var req dto.SendNotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	record, delivered, err := ctrl.Store.SendToUser(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, gin.H{"notification": record, "delivered": delivered})
}

func (ctrl *NotificationController) NotifyAll(c *gin.Context) {
	var req dto.BroadcastRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ctrl.Store.Broadcast(req.Message); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// Online trả về số kết nối websocket đang mở của một user
func (ctrl *NotificationController) Online(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	connections := 0
	if ctrl.Hub != nil {
		connections = ctrl.Hub.Online(id)
	}
	response.Success(c, gin.H{"userId": id, "connections": connections})
}
