package allocation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "propshare/errors"
	"propshare/models"
	"propshare/services/logger"
	"propshare/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request là yêu cầu đăng ký các lần mua cổ phần của một user
type Request struct {
	UserID    uint
	CreatedBy uint
	Entries   []Entry
}

// Allocator ghi các dòng sở hữu và trừ cổ phần trong cùng một transaction
type Allocator struct {
	db     *gorm.DB
	logger logger.Logger
	now    func() time.Time
}

type Options struct {
	DB     *gorm.DB
	Logger logger.Logger
	// Clock mặc định là time.Now
	Clock func() time.Time
}

func NewAllocator(opts Options) *Allocator {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Allocator{
		db:     opts.DB,
		logger: opts.Logger,
		now:    clock,
	}
}

// Allocate kiểm tra, trừ cổ phần và tạo dòng sở hữu cho mọi entry.
// Lỗi ở bất kỳ entry nào sẽ rollback toàn bộ.
func (a *Allocator) Allocate(ctx context.Context, req Request) ([]models.UserProperty, error) {
	if len(req.Entries) == 0 {
		return nil, apperrors.Validation("Danh sách cổ phần không được để trống", nil)
	}
	now := a.now()

	var rows []models.UserProperty
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, req.UserID); err != nil {
			return err
		}
		for i, entry := range req.Entries {
			entryRows, err := a.allocateEntry(tx, req, entry, now)
			if err != nil {
				a.logger.Error("❌ Phân bổ thất bại cho entry %d (property %d): %v", i, entry.PropertyID, err)
				return err
			}
			rows = append(rows, entryRows...)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperrors.DBError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("✅ Đã tạo %d dòng sở hữu cho user %d", len(rows), req.UserID)
	return rows, nil
}

func ensureUser(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return apperrors.DBError(err)
	}
	if count == 0 {
		return apperrors.NotFound(apperrors.ErrCodeUserNotFound, "Không tìm thấy người dùng")
	}
	return nil
}

func (a *Allocator) allocateEntry(tx *gorm.DB, req Request, entry Entry, now time.Time) ([]models.UserProperty, error) {
	if entry.NoOfShares < 1 {
		return nil, apperrors.Validation("Số cổ phần phải lớn hơn 0", map[string]any{"propertyId": entry.PropertyID})
	}
	if entry.AcquisitionDate.IsZero() {
		return nil, apperrors.Validation("Ngày mua không được để trống", map[string]any{"propertyId": entry.PropertyID})
	}
	if utils.DaysBetween(now, entry.AcquisitionDate) > 0 {
		return nil, apperrors.Validation("Ngày mua không được ở tương lai", map[string]any{
			"propertyId":      entry.PropertyID,
			"acquisitionDate": utils.FormatDate(entry.AcquisitionDate),
		})
	}

	var property models.Property
	if err := tx.First(&property, entry.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodePropertyNotFound, "Không tìm thấy bất động sản").
				WithDetails(map[string]any{"propertyId": entry.PropertyID})
		}
		return nil, apperrors.DBError(err)
	}

	var details models.PropertyDetails
	if err := tx.Where("property_id = ?", property.ID).First(&details).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(apperrors.ErrCodePropertyDetailsNotFound, "Bất động sản chưa có cấu hình mùa").
				WithDetails(map[string]any{"propertyId": property.ID})
		}
		return nil, apperrors.DBError(err)
	}

	if entry.NoOfShares > property.PropertyRemainingShare {
		return nil, insufficientShares(property, entry.NoOfShares)
	}

	// Chỉ trừ khi vẫn còn đủ, tránh bán quá khi có request song song
	res := tx.Model(&models.Property{}).
		Where("id = ? AND property_remaining_share >= ?", property.ID, entry.NoOfShares).
		Update("property_remaining_share", gorm.Expr("property_remaining_share - ?", entry.NoOfShares))
	if res.Error != nil {
		return nil, apperrors.DBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, insufficientShares(property, entry.NoOfShares)
	}

	return BuildRows(Plan{
		UserID:        req.UserID,
		CreatedBy:     req.CreatedBy,
		AcquisitionID: uuid.NewString(),
		Entry:         entry,
		Details:       &details,
		Now:           now,
	}), nil
}

func insufficientShares(property models.Property, requested int) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrCodeInsufficientShares, "Không đủ cổ phần để phân bổ", nil).
		WithDetails(map[string]any{
			"propertyId": property.ID,
			"requested":  requested,
			"remaining":  property.PropertyRemainingShare,
		})
}

// ListFilter lọc danh sách dòng sở hữu
type ListFilter struct {
	UserID     uint
	PropertyID uint
	Year       int
}

// List trả về các dòng sở hữu theo năm và ngày mua
func (a *Allocator) List(ctx context.Context, filter ListFilter) ([]models.UserProperty, error) {
	tx := a.db.WithContext(ctx).Model(&models.UserProperty{}).Preload("Property")
	if filter.UserID != 0 {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	if filter.PropertyID != 0 {
		tx = tx.Where("property_id = ?", filter.PropertyID)
	}
	if filter.Year != 0 {
		tx = tx.Where("year = ?", filter.Year)
	}
	var rows []models.UserProperty
	if err := tx.Order("year asc, acquisition_date asc, id asc").Find(&rows).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	return rows, nil
}

// Remove xóa toàn bộ dòng của một lần mua và trả cổ phần về bất động sản.
// Không cho xóa khi đã có đêm được đặt, dùng, hủy hoặc mất.
func (a *Allocator) Remove(ctx context.Context, acquisitionID string) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.UserProperty
		if err := tx.Where("acquisition_id = ?", acquisitionID).Find(&rows).Error; err != nil {
			return apperrors.DBError(err)
		}
		if len(rows) == 0 {
			return apperrors.NotFound(apperrors.ErrCodeAcquisitionNotFound, "Không tìm thấy lần mua cổ phần")
		}
		for i := range rows {
			if rows[i].HasActivity() {
				return apperrors.Conflict(apperrors.ErrCodeAcquisitionInUse, "Cổ phần đã phát sinh đặt phòng, không thể xóa").
					WithDetails(map[string]any{"year": rows[i].Year})
			}
		}

		if err := tx.Where("acquisition_id = ?", acquisitionID).Delete(&models.UserProperty{}).Error; err != nil {
			return apperrors.DBError(err)
		}
		first := rows[0]
		if err := tx.Model(&models.Property{}).Where("id = ?", first.PropertyID).
			Update("property_remaining_share", gorm.Expr("property_remaining_share + ?", first.NoOfShare)).Error; err != nil {
			return apperrors.DBError(err)
		}
		a.logger.Info("Đã xóa lần mua %s, trả lại %d cổ phần cho property %d", acquisitionID, first.NoOfShare, first.PropertyID)
		return nil
	})
}

// PendingRollovers trả về các lần mua chưa có đủ dòng tới năm hiện tại + ForwardYears
func (a *Allocator) PendingRollovers(ctx context.Context) ([]string, error) {
	horizon := a.now().Year() + ForwardYears
	var ids []string
	err := a.db.WithContext(ctx).Model(&models.UserProperty{}).
		Select("acquisition_id").
		Group("acquisition_id").
		Having("MAX(year) < ?", horizon).
		Pluck("acquisition_id", &ids).Error
	if err != nil {
		return nil, apperrors.DBError(err)
	}
	return ids, nil
}

// ExtendAcquisition tạo các năm còn thiếu (không chia tỷ lệ) cho một lần mua.
// Trả về số dòng đã tạo.
func (a *Allocator) ExtendAcquisition(ctx context.Context, acquisitionID string) (int, error) {
	now := a.now()
	horizon := now.Year() + ForwardYears
	created := 0

	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var latest models.UserProperty
		if err := tx.Where("acquisition_id = ?", acquisitionID).Order("year desc").First(&latest).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(apperrors.ErrCodeAcquisitionNotFound, "Không tìm thấy lần mua cổ phần")
			}
			return apperrors.DBError(err)
		}
		if latest.Year >= horizon {
			return nil
		}

		var details models.PropertyDetails
		if err := tx.Where("property_id = ?", latest.PropertyID).First(&details).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound(apperrors.ErrCodePropertyDetailsNotFound, "Bất động sản chưa có cấu hình mùa")
			}
			return apperrors.DBError(err)
		}

		plan := Plan{
			UserID:        latest.UserID,
			CreatedBy:     latest.CreatedBy,
			AcquisitionID: acquisitionID,
			Entry: Entry{
				PropertyID:      latest.PropertyID,
				NoOfShares:      latest.NoOfShare,
				AcquisitionDate: latest.AcquisitionDate,
			},
			Details: &details,
			Now:     now,
		}

		start := latest.Year + 1
		if start < now.Year() {
			start = now.Year()
		}
		// Lần mua thuộc năm trước nên BuildRow không chia tỷ lệ các năm này
		var rows []models.UserProperty
		for year := start; year <= horizon; year++ {
			rows = append(rows, BuildRow(plan, year))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeDBError, fmt.Sprintf("Không thể tạo năm mới cho %s", acquisitionID), http.StatusInternalServerError)
		}
		created = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if created > 0 {
		a.logger.Info("Đã tạo thêm %d năm cho lần mua %s", created, acquisitionID)
	}
	return created, nil
}
