package commands

import (
	"propshare/config"
	"propshare/controllers"
	"propshare/jobs"
	"propshare/middleware"
	"propshare/routes"
	"propshare/services"
	"propshare/services/allocation"
	"propshare/services/booking"
	"propshare/services/notification"
)

// Server giữ các service đã nối với hạ tầng của App
type Server struct {
	App       *config.App
	Tokens    *services.TokenManager
	Allocator *allocation.Allocator
	Bookings  *booking.Facade
	Hub       *notification.Hub
}

// Wire khởi tạo service, controller và gắn route vào router của App
func Wire(app *config.App) *Server {
	cfg := app.Config
	db, rdb, l := app.DB, app.Redis, app.Logger

	tokens := services.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	hub := notification.NewHub(app.Melody, l)

	var locker booking.Locker = services.NoopLocker{}
	if rdb != nil {
		locker = services.NewRedisLocker(rdb)
	}
	var google services.GoogleVerifier
	if cfg.Google.ClientID != "" {
		google = services.IDTokenVerifier{ClientID: cfg.Google.ClientID}
	}

	notifier := notification.NewBookingNotifier(notification.NotifierOptions{
		DB:        db,
		Hub:       hub,
		Publisher: app.Publisher,
		Mailer:    app.Mailer,
		Logger:    l,
	})
	bookings := booking.NewFacade(booking.Options{
		DB:                     db,
		Logger:                 l,
		Locker:                 locker,
		Notifier:               notifier,
		LastMinuteWindowDays:   cfg.Booking.LastMinuteWindowDays,
		CancellationNoticeDays: cfg.Booking.CancellationNoticeDays,
	})
	allocator := allocation.NewAllocator(allocation.Options{DB: db, Logger: l})

	users := services.NewUserService(services.UserServiceOptions{DB: db, Logger: l})
	auth := services.NewAuthService(services.AuthServiceOptions{
		DB:     db,
		Tokens: tokens,
		Google: google,
		Mailer: app.Mailer,
		Logger: l,
	})

	ctrls := routes.Controllers{
		Auth:         controllers.NewAuthController(auth, users, tokens),
		User:         controllers.NewUserController(users, services.NewRoleService(db, rdb, l)),
		Property:     controllers.NewPropertyController(services.NewPropertyService(db, rdb, l)),
		Amenity:      controllers.NewAmenityController(services.NewAmenityService(db, rdb, l)),
		Holiday:      controllers.NewHolidayController(services.NewHolidayService(db, l)),
		Document:     controllers.NewDocumentController(services.NewDocumentService(db, app.Uploader, l)),
		UserProperty: controllers.NewUserPropertyController(allocator),
		Booking:      controllers.NewBookingController(bookings),
		Notification: controllers.NewNotificationController(notification.NewStore(db, hub), hub),
	}

	router := app.Router
	zl := l.Zap()
	router.Use(middleware.RequestID(), middleware.Recovery(zl), middleware.RequestLogger(zl), middleware.ErrorHandler())
	routes.SetupRoutes(router, ctrls, tokens)
	config.InitWebSocket(router, app.Melody, middleware.AuthMiddleware(tokens))

	return &Server{
		App:       app,
		Tokens:    tokens,
		Allocator: allocator,
		Bookings:  bookings,
		Hub:       hub,
	}
}

// StartJobs đăng ký cron nếu được bật trong cấu hình
func (s *Server) StartJobs() error {
	cfg := s.App.Config.Jobs
	if !cfg.Enabled || s.App.Cron == nil {
		return nil
	}
	return jobs.InitCronJobs(s.App.Cron, jobs.Options{
		Completer:        s.Bookings,
		Roller:           s.Allocator,
		Logger:           s.App.Logger,
		CompleteSchedule: cfg.CompleteSchedule,
		RolloverSchedule: cfg.RolloverSchedule,
		PoolSize:         cfg.RolloverPoolSize,
	})
}
