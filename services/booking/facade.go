package booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	apperrors "propshare/errors"
	"propshare/models"
	"propshare/rules"
	"propshare/services/logger"
	"propshare/utils"

	"gorm.io/gorm"
)

const (
	DefaultLastMinuteWindowDays   = 14
	DefaultCancellationNoticeDays = 14
	lockTTL                       = 10 * time.Second
)

// Locker khóa theo bất động sản khi tạo booking
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

// Notifier nhận sự kiện sau khi transaction đã commit
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *models.Booking) error
	BookingCancelled(ctx context.Context, booking *models.Booking) error
	BookingCompleted(ctx context.Context, booking *models.Booking) error
}

type Options struct {
	DB                     *gorm.DB
	Logger                 logger.Logger
	Locker                 Locker
	Notifier               Notifier
	Clock                  func() time.Time
	LastMinuteWindowDays   int
	CancellationNoticeDays int
}

// Facade gom các bước đặt, hủy và hoàn thành booking
type Facade struct {
	db         *gorm.DB
	logger     logger.Logger
	locker     Locker
	notifier   Notifier
	now        func() time.Time
	windowDays int
	noticeDays int
}

func NewFacade(opts Options) *Facade {
	f := &Facade{
		db:         opts.DB,
		logger:     opts.Logger,
		locker:     opts.Locker,
		notifier:   opts.Notifier,
		now:        opts.Clock,
		windowDays: opts.LastMinuteWindowDays,
		noticeDays: opts.CancellationNoticeDays,
	}
	if f.logger == nil {
		f.logger = logger.NewNop()
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.windowDays <= 0 {
		f.windowDays = DefaultLastMinuteWindowDays
	}
	if f.noticeDays <= 0 {
		f.noticeDays = DefaultCancellationNoticeDays
	}
	return f
}

// CreateRequest là yêu cầu đặt phòng của chủ sở hữu
type CreateRequest struct {
	UserID     uint
	PropertyID uint
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	Pets       int
	Note       string
}

// Quote là kết quả phân loại đêm của một yêu cầu
type Quote struct {
	Nights     int    `json:"nights"`
	LastMinute bool   `json:"lastMinute"`
	Process    string `json:"process"`
	Breakdown  []Line `json:"breakdown"`
}

type plan struct {
	nights  []time.Time
	rows    []models.UserProperty
	process BookingProcess
	demand  Demand
}

func (f *Facade) today() time.Time {
	return utils.DateOnly(f.now())
}

func (f *Facade) validateDates(req CreateRequest) error {
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return apperrors.Validation("Ngày nhận và trả phòng không được để trống", nil)
	}
	if !utils.DateOnly(req.CheckOut).After(utils.DateOnly(req.CheckIn)) {
		return apperrors.Validation("Ngày trả phòng phải sau ngày nhận phòng", nil)
	}
	if utils.DateOnly(req.CheckIn).Before(f.today()) {
		return apperrors.Validation("Ngày nhận phòng không được ở quá khứ", nil)
	}
	if req.Guests < 0 || req.Pets < 0 {
		return apperrors.Validation("Số khách và thú cưng không được âm", nil)
	}
	return nil
}

// prepare kiểm tra mọi điều kiện và tính Demand, chưa ghi gì vào DB
func (f *Facade) prepare(tx *gorm.DB, req CreateRequest) (*plan, error) {
	var property models.Property
	if err := tx.Preload("Details").First(&property, req.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodePropertyNotFound, "Không tìm thấy bất động sản")
		}
		return nil, apperrors.DBError(err)
	}
	if property.Details == nil {
		return nil, apperrors.NotFound(apperrors.ErrCodePropertyDetailsNotFound, "Bất động sản chưa có cấu hình mùa")
	}

	nights := utils.NightsOf(req.CheckIn, req.CheckOut)
	perYear := NightsPerYear(nights)
	years := make([]int, 0, len(perYear))
	for y := range perYear {
		years = append(years, y)
	}
	sort.Ints(years)

	var rows []models.UserProperty
	if err := tx.Where("user_id = ? AND property_id = ? AND year IN ?", req.UserID, req.PropertyID, years).
		Order("acquisition_date asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	owned := map[int]bool{}
	maxStay := 0
	checkInYear := nights[0].Year()
	for i := range rows {
		owned[rows[i].Year] = true
		if rows[i].Year == checkInYear && rows[i].MaximumStayLength > maxStay {
			maxStay = rows[i].MaximumStayLength
		}
	}
	for _, y := range years {
		if !owned[y] {
			return nil, apperrors.Forbidden(apperrors.ErrCodeNotOwner, "Bạn không sở hữu cổ phần của bất động sản này cho năm đặt phòng").
				WithDetails(map[string]any{"year": y})
		}
	}
	if len(nights) > maxStay {
		return nil, apperrors.NewAppError(apperrors.ErrCodeStayTooLong, "Số đêm vượt quá thời gian lưu trú tối đa", nil).
			WithDetails(map[string]any{"nights": len(nights), "maximumStayLength": maxStay})
	}

	today := f.today()
	lastMinute := IsLastMinute(nights[0], today, f.windowDays)
	if err := checkRules(property.Details, req, len(nights), lastMinute); err != nil {
		return nil, err
	}

	var overlapping int64
	if err := tx.Model(&models.Booking{}).
		Where("property_id = ? AND status = ? AND check_in_date < ? AND check_out_date > ?",
			req.PropertyID, models.BookingStatusConfirmed, utils.DateOnly(req.CheckOut), utils.DateOnly(req.CheckIn)).
		Count(&overlapping).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	if overlapping > 0 {
		return nil, apperrors.Conflict(apperrors.ErrCodePropertyUnavailable, "Bất động sản đã có người đặt trong khoảng thời gian này")
	}

	var holidays []models.Holiday
	if err := tx.Where("property_id IS NULL OR property_id = ?", req.PropertyID).Find(&holidays).Error; err != nil {
		return nil, apperrors.DBError(err)
	}

	process := SelectProcess(ProcessInput{
		Calendar:   Calendar{PropertyID: property.ID, Details: property.Details, Holidays: holidays},
		Rows:       rows,
		Nights:     nights,
		Today:      today,
		WindowDays: f.windowDays,
	})
	return &plan{
		nights:  nights,
		rows:    rows,
		process: process,
		demand:  process.Demand(nights),
	}, nil
}

func checkRules(details *models.PropertyDetails, req CreateRequest, nights int, lastMinute bool) error {
	list, err := details.Rules()
	if err != nil {
		return apperrors.Internal("Cấu hình rule đặt phòng không hợp lệ", err)
	}
	if len(list) == 0 {
		return nil
	}
	checkIn := utils.DateOnly(req.CheckIn)
	events, err := rules.Run(list, rules.Facts{
		"guests":         req.Guests,
		"pets":           req.Pets,
		"nights":         nights,
		"lastMinute":     lastMinute,
		"checkInMonth":   int(checkIn.Month()),
		"checkInWeekday": int(checkIn.Weekday()),
	})
	if err != nil {
		return apperrors.Internal("Không thể đánh giá rule đặt phòng", err)
	}
	if len(events) == 0 {
		return nil
	}
	message := events[0].Message
	if message == "" {
		message = "Yêu cầu đặt phòng vi phạm quy định của bất động sản"
	}
	fired := make([]string, 0, len(events))
	for _, e := range events {
		fired = append(fired, e.Type)
	}
	return apperrors.New(apperrors.ErrCodeRuleViolation, message, http.StatusUnprocessableEntity).
		WithDetails(map[string]any{"events": fired})
}

// Preview trả về cách phân loại đêm mà không ghi booking
func (f *Facade) Preview(ctx context.Context, req CreateRequest) (*Quote, error) {
	if err := f.validateDates(req); err != nil {
		return nil, err
	}
	p, err := f.prepare(f.db.WithContext(ctx), req)
	if err != nil {
		return nil, err
	}
	return quoteOf(p), nil
}

func quoteOf(p *plan) *Quote {
	return &Quote{
		Nights:     len(p.nights),
		LastMinute: p.process.LastMinute(),
		Process:    p.process.Name(),
		Breakdown:  p.demand.Lines(),
	}
}

// CreateBooking kiểm tra, trừ đêm và lưu booking trong một transaction
func (f *Facade) CreateBooking(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	if err := f.validateDates(req); err != nil {
		return nil, err
	}

	if f.locker != nil {
		release, acquired, err := f.locker.TryLock(ctx, fmt.Sprintf("lock:booking:property:%d", req.PropertyID), lockTTL)
		if err != nil {
			return nil, apperrors.Internal("Không thể khóa bất động sản", err)
		}
		if !acquired {
			return nil, apperrors.Conflict(apperrors.ErrCodePropertyBusy, "Bất động sản đang được đặt, vui lòng thử lại")
		}
		defer release()
	}

	var booking models.Booking
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := f.prepare(tx, req)
		if err != nil {
			return err
		}
		booking = models.Booking{
			UserID:       req.UserID,
			PropertyID:   req.PropertyID,
			CheckInDate:  utils.DateOnly(req.CheckIn),
			CheckOutDate: utils.DateOnly(req.CheckOut),
			Nights:       len(p.nights),
			Guests:       req.Guests,
			Pets:         req.Pets,
			Note:         req.Note,
			LastMinute:   p.process.LastMinute(),
			Status:       models.BookingStatusConfirmed,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return apperrors.DBError(err)
		}
		return NewReserveNightsCommand(&booking, p.rows, p.demand).Execute(tx)
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("✅ Booking %d: user %d đặt %d đêm tại property %d", booking.ID, booking.UserID, booking.Nights, booking.PropertyID)
	f.notify(ctx, "confirmed", &booking)
	return &booking, nil
}

// CancelBooking hủy booking. Hủy trước ngày nhận phòng ít nhất noticeDays ngày thì
// đêm được trả lại, ngược lại đêm bị mất.
func (f *Facade) CancelBooking(ctx context.Context, bookingID, actorID uint, isAdmin bool) (*models.Booking, error) {
	var booking models.Booking
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadBooking(tx, bookingID, &booking); err != nil {
			return err
		}
		if !isAdmin && booking.UserID != actorID {
			return apperrors.Forbidden(apperrors.ErrCodeNotOwner, "Bạn không có quyền hủy booking này")
		}

		now := f.now()
		if err := models.GetBookingState(booking.Status).Cancel(&booking, now); err != nil {
			return apperrors.Conflict(apperrors.ErrCodeInvalidOperation, err.Error())
		}
		booking.LateCancel = utils.DaysBetween(f.today(), booking.CheckInDate) < f.noticeDays

		var cmd LedgerCommand = NewReleaseNightsCommand(booking.Allocations)
		if booking.LateCancel {
			cmd = NewForfeitNightsCommand(booking.Allocations)
		}
		if err := cmd.Execute(tx); err != nil {
			return err
		}
		return saveStatus(tx, &booking, "status", "late_cancel", "cancelled_at")
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("Booking %d đã hủy (hủy muộn: %t)", booking.ID, booking.LateCancel)
	f.notify(ctx, "cancelled", &booking)
	return &booking, nil
}

// CompleteBooking chuyển đêm đã đặt sang đã dùng
func (f *Facade) CompleteBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadBooking(tx, bookingID, &booking); err != nil {
			return err
		}
		if err := models.GetBookingState(booking.Status).Complete(&booking, f.now()); err != nil {
			return apperrors.Conflict(apperrors.ErrCodeInvalidOperation, err.Error())
		}
		if err := NewConsumeNightsCommand(booking.Allocations).Execute(tx); err != nil {
			return err
		}
		return saveStatus(tx, &booking, "status", "completed_at")
	})
	if err != nil {
		return nil, err
	}
	f.notify(ctx, "completed", &booking)
	return &booking, nil
}

// CompleteFinished hoàn thành các booking có ngày trả phòng trước hôm nay.
// Lỗi của từng booking được log và bỏ qua.
func (f *Facade) CompleteFinished(ctx context.Context) (int, error) {
	var ids []uint
	if err := f.db.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ? AND check_out_date < ?", models.BookingStatusConfirmed, f.today()).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		return 0, apperrors.DBError(err)
	}

	done := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := f.CompleteBooking(ctx, id); err != nil {
			f.logger.Error("❌ Không thể hoàn thành booking %d: %v", id, err)
			continue
		}
		done++
	}
	return done, nil
}

func loadBooking(tx *gorm.DB, id uint, booking *models.Booking) error {
	if err := tx.Preload("Allocations").First(booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(apperrors.ErrCodeBookingNotFound, "Không tìm thấy booking")
		}
		return apperrors.DBError(err)
	}
	return nil
}

func saveStatus(tx *gorm.DB, booking *models.Booking, columns ...string) error {
	if err := tx.Model(booking).Select(columns).Updates(booking).Error; err != nil {
		return apperrors.DBError(err)
	}
	return nil
}

func (f *Facade) notify(ctx context.Context, event string, booking *models.Booking) {
	if f.notifier == nil {
		return
	}
	var err error
	switch event {
	case "confirmed":
		err = f.notifier.BookingConfirmed(ctx, booking)
	case "cancelled":
		err = f.notifier.BookingCancelled(ctx, booking)
	case "completed":
		err = f.notifier.BookingCompleted(ctx, booking)
	}
	if err != nil {
		f.logger.Warn("Gửi thông báo %s cho booking %d thất bại: %v", event, booking.ID, err)
	}
}

// Get trả về booking kèm bất động sản, người đặt và các phần trừ đêm
func (f *Facade) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := f.db.WithContext(ctx).
		Preload("Allocations").Preload("Property").Preload("User").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodeBookingNotFound, "Không tìm thấy booking")
		}
		return nil, apperrors.DBError(err)
	}
	return &booking, nil
}

type ListFilter struct {
	UserID     uint
	PropertyID uint
	Status     int
	FromDate   time.Time
	ToDate     time.Time
	Page       int
	Limit      int
}

// List trả về danh sách booking và tổng số bản ghi
func (f *Facade) List(ctx context.Context, filter ListFilter) ([]models.Booking, int64, error) {
	tx := f.db.WithContext(ctx).Model(&models.Booking{})
	if filter.UserID != 0 {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	if filter.PropertyID != 0 {
		tx = tx.Where("property_id = ?", filter.PropertyID)
	}
	if filter.Status != 0 {
		tx = tx.Where("status = ?", filter.Status)
	}
	if !filter.FromDate.IsZero() {
		tx = tx.Where("check_out_date > ?", utils.DateOnly(filter.FromDate))
	}
	if !filter.ToDate.IsZero() {
		tx = tx.Where("check_in_date <= ?", utils.DateOnly(filter.ToDate))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	if filter.Limit > 0 {
		page := filter.Page
		if page < 0 {
			page = 0
		}
		tx = tx.Offset(page * filter.Limit).Limit(filter.Limit)
	}
	var bookings []models.Booking
	if err := tx.Preload("Property").Preload("User").Order("check_in_date desc, id desc").Find(&bookings).Error; err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	return bookings, total, nil
}
