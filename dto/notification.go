package dto

type NotificationListQuery struct {
	PageQuery
	Unread bool `form:"unread"`
}

type SendNotificationRequest struct {
	UserID  uint   `json:"userId" binding:"required"`
	Message string `json:"message" binding:"required,max=1000"`
}

type BroadcastRequest struct {
	Message string `json:"message" binding:"required,max=1000"`
}
