package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	apperrors "propshare/errors"
	"propshare/models"
	"propshare/services/logger"
	"propshare/utils"

	"gorm.io/gorm"
)

// Mailer gửi email HTML
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type NotifierOptions struct {
	DB        *gorm.DB
	Hub       *Hub
	Publisher Publisher
	Mailer    Mailer
	Logger    logger.Logger
}

// BookingNotifier lưu thông báo, đẩy qua websocket, Kafka và email.
// Lỗi của từng kênh được gộp lại, kênh này lỗi không chặn kênh khác.
type BookingNotifier struct {
	db        *gorm.DB
	hub       *Hub
	publisher Publisher
	mailer    Mailer
	logger    logger.Logger
}

func NewBookingNotifier(opts NotifierOptions) *BookingNotifier {
	n := &BookingNotifier{
		db:        opts.DB,
		hub:       opts.Hub,
		publisher: opts.Publisher,
		mailer:    opts.Mailer,
		logger:    opts.Logger,
	}
	if n.publisher == nil {
		n.publisher = NoopPublisher{}
	}
	if n.logger == nil {
		n.logger = logger.NewNop()
	}
	return n
}

func (n *BookingNotifier) BookingConfirmed(ctx context.Context, booking *models.Booking) error {
	return n.dispatch(ctx, EventBookingConfirmed, booking)
}

func (n *BookingNotifier) BookingCancelled(ctx context.Context, booking *models.Booking) error {
	return n.dispatch(ctx, EventBookingCancelled, booking)
}

func (n *BookingNotifier) BookingCompleted(ctx context.Context, booking *models.Booking) error {
	return n.dispatch(ctx, EventBookingCompleted, booking)
}

func (n *BookingNotifier) dispatch(ctx context.Context, event string, booking *models.Booking) error {
	msg := NewMessageBuilder(event, booking).Build()
	payload, err := msg.JSON()
	if err != nil {
		return err
	}

	var errs []error
	bookingID := booking.ID
	record := models.Notification{
		UserID:    booking.UserID,
		BookingID: &bookingID,
		Type:      event,
		Message:   msg.Text,
	}
	if err := n.db.WithContext(ctx).Create(&record).Error; err != nil {
		errs = append(errs, fmt.Errorf("save notification: %w", err))
	}

	if n.hub != nil {
		n.hub.NotifyUser(booking.UserID, payload)
	}

	if err := n.publisher.Publish(ctx, strconv.FormatUint(uint64(booking.ID), 10), payload); err != nil {
		errs = append(errs, fmt.Errorf("publish %s: %w", event, err))
	}

	if n.mailer != nil && event != EventBookingCompleted {
		if err := n.sendMail(ctx, event, booking, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *BookingNotifier) sendMail(ctx context.Context, event string, booking *models.Booking, msg Message) error {
	user := booking.User
	if user == nil {
		user = &models.User{}
		if err := n.db.WithContext(ctx).First(user, booking.UserID).Error; err != nil {
			return fmt.Errorf("load user %d: %w", booking.UserID, err)
		}
	}
	if user.Email == "" {
		return nil
	}
	subject := "Xác nhận đặt lịch"
	if event == EventBookingCancelled {
		subject = "Hủy đặt lịch"
	}
	body := fmt.Sprintf(`<p>Xin chào %s,</p><p>%s</p><p>Nhận phòng: %s<br>Trả phòng: %s</p><p>Xin cảm ơn!</p>`,
		user.Name, msg.Text, utils.FormatDate(booking.CheckInDate), utils.FormatDate(booking.CheckOutDate))
	return n.mailer.Send(ctx, user.Email, subject, body)
}

// Store đọc và đánh dấu thông báo của người dùng
type Store struct {
	db  *gorm.DB
	hub *Hub
}

func NewStore(db *gorm.DB, hub *Hub) *Store {
	return &Store{db: db, hub: hub}
}

func (s *Store) List(ctx context.Context, userID uint, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	if limit > 0 {
		tx = tx.Offset(page * limit).Limit(limit)
	}
	var list []models.Notification
	if err := tx.Order("id desc").Find(&list).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	return list, total, nil
}

func (s *Store) MarkRead(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return apperrors.DBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(apperrors.ErrCodeDBNotFound, "Không tìm thấy thông báo")
	}
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, apperrors.DBError(res.Error)
	}
	return res.RowsAffected, nil
}

// SendToUser lưu và đẩy một thông báo tự do tới user (admin gửi)
func (s *Store) SendToUser(ctx context.Context, userID uint, text string) (*models.Notification, int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	if count == 0 {
		return nil, 0, apperrors.NotFound(apperrors.ErrCodeUserNotFound, "Không tìm thấy người dùng")
	}
	record := models.Notification{UserID: userID, Type: "message", Message: text}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	delivered := 0
	if s.hub != nil {
		payload, err := Message{Type: "message", UserID: userID, Text: text}.JSON()
		if err != nil {
			return nil, 0, apperrors.Internal("Không tạo được thông báo", err)
		}
		delivered = s.hub.NotifyUser(userID, payload)
	}
	return &record, delivered, nil
}

// Broadcast gửi tới mọi kết nối đang mở
func (s *Store) Broadcast(text string) error {
	if s.hub == nil {
		return apperrors.Internal("Websocket chưa được khởi tạo", nil)
	}
	payload, err := Message{Type: "broadcast", Text: text}.JSON()
	if err != nil {
		return apperrors.Internal("Không tạo được thông báo", err)
	}
	return s.hub.Broadcast(payload)
}
