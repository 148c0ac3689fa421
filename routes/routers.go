package routes

import (
	"net/http"

	"propshare/constants"
	"propshare/controllers"
	middlewares "propshare/middleware"
	"propshare/services"

	"github.com/gin-gonic/gin"
)

// Controllers gom các controller đã được khởi tạo
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Property     *controllers.PropertyController
	Amenity      *controllers.AmenityController
	Holiday      *controllers.HolidayController
	Document     *controllers.DocumentController
	UserProperty *controllers.UserPropertyController
	Booking      *controllers.BookingController
	Notification *controllers.NotificationController
}

func SetupRoutes(router *gin.Engine, ctrls Controllers, tokens *services.TokenManager) {
	authed := middlewares.AuthMiddleware(tokens)
	admin := middlewares.AuthMiddleware(tokens, constants.RoleAdmin)
	manager := middlewares.AuthMiddleware(tokens, constants.RoleAdmin, constants.RoleStaff)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", ctrls.Auth.Register)
	v1.POST("/auth/login", ctrls.Auth.Login)
	v1.POST("/auth/google", ctrls.Auth.GoogleLogin)
	v1.GET("/auth/me", authed, ctrls.Auth.Me)
	v1.PUT("/auth/password", authed, ctrls.Auth.ChangePassword)

	v1.GET("/users", admin, ctrls.User.GetUsers)
	v1.PUT("/users/me", authed, ctrls.User.UpdateProfile)
	v1.GET("/users/:id", admin, ctrls.User.GetUserDetail)
	v1.PUT("/users/:id/status", admin, ctrls.User.ChangeUserStatus)
	v1.PUT("/users/:id/role", admin, ctrls.User.ChangeUserRole)

	v1.GET("/roles", admin, ctrls.User.GetRoles)
	v1.POST("/roles", admin, ctrls.User.CreateRole)
	v1.PUT("/roles/:id", admin, ctrls.User.UpdateRole)
	v1.DELETE("/roles/:id", admin, ctrls.User.DeleteRole)

	v1.GET("/properties", ctrls.Property.ListProperties)
	v1.GET("/properties/:id", ctrls.Property.GetProperty)
	v1.POST("/properties", manager, ctrls.Property.CreateProperty)
	v1.PUT("/properties/:id", manager, ctrls.Property.UpdateProperty)
	v1.DELETE("/properties/:id", admin, ctrls.Property.DeleteProperty)
	v1.PUT("/properties/:id/details", manager, ctrls.Property.UpsertDetails)
	v1.PUT("/properties/:id/amenities", manager, ctrls.Property.SetAmenities)

	v1.GET("/properties/:id/documents", authed, ctrls.Document.ListDocuments)
	v1.POST("/properties/:id/documents", manager, ctrls.Document.UploadDocument)
	v1.DELETE("/properties/:id/documents/:documentId", manager, ctrls.Document.DeleteDocument)

	v1.GET("/amenities", ctrls.Amenity.GetAllAmenities)
	v1.GET("/amenities/:id", ctrls.Amenity.GetAmenityDetail)
	v1.POST("/amenities", manager, ctrls.Amenity.CreateAmenity)
	v1.POST("/amenities/batch", manager, ctrls.Amenity.CreateAmenities)
	v1.PUT("/amenities/:id", manager, ctrls.Amenity.UpdateAmenity)
	v1.PUT("/amenities/:id/status", manager, ctrls.Amenity.ChangeAmenityStatus)
	v1.DELETE("/amenities/:id", manager, ctrls.Amenity.DeleteAmenity)

	v1.GET("/holidays", ctrls.Holiday.GetHolidays)
	v1.GET("/holidays/:id", ctrls.Holiday.GetDetailHoliday)
	v1.POST("/holidays", manager, ctrls.Holiday.CreateHoliday)
	v1.PUT("/holidays/:id", manager, ctrls.Holiday.UpdateHoliday)
	v1.DELETE("/holidays/:id", manager, ctrls.Holiday.DeleteHoliday)

	v1.GET("/user-properties", authed, ctrls.UserProperty.ListUserProperties)
	v1.POST("/user-properties", admin, ctrls.UserProperty.Allocate)
	v1.DELETE("/user-properties/:acquisitionId", admin, ctrls.UserProperty.RemoveAcquisition)

	v1.POST("/bookings/preview", authed, ctrls.Booking.PreviewBooking)
	v1.POST("/bookings", authed, ctrls.Booking.CreateBooking)
	v1.GET("/bookings", authed, ctrls.Booking.GetBookings)
	v1.GET("/bookings/:id", authed, ctrls.Booking.GetBookingDetail)
	v1.PUT("/bookings/:id/cancel", authed, ctrls.Booking.CancelBooking)
	v1.PUT("/bookings/:id/complete", admin, ctrls.Booking.CompleteBooking)
	v1.POST("/bookings/complete-finished", admin, ctrls.Booking.CompleteFinished)

	v1.GET("/notifications", authed, ctrls.Notification.GetNotifications)
	v1.PUT("/notifications/read-all", authed, ctrls.Notification.MarkAllRead)
	v1.PUT("/notifications/:id/read", authed, ctrls.Notification.MarkRead)
	v1.POST("/notifications/send", admin, ctrls.Notification.NotifyUser)
	v1.POST("/notifications/broadcast", admin, ctrls.Notification.NotifyAll)
	v1.GET("/notifications/online/:id", admin, ctrls.Notification.Online)
}
