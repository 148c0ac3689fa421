package booking

import (
	"fmt"
	"sort"

	apperrors "propshare/errors"
	"propshare/models"
	"propshare/types"

	"gorm.io/gorm"
)

// LedgerCommand là một thao tác trên bộ đếm đêm, chạy trong transaction của caller
type LedgerCommand interface {
	Execute(tx *gorm.DB) error
}

// ReserveNightsCommand trừ remaining và cộng booked theo Demand,
// lấy lần lượt từ các dòng sở hữu mua sớm nhất.
type ReserveNightsCommand struct {
	booking *models.Booking
	rows    []models.UserProperty
	demand  Demand
}

func NewReserveNightsCommand(booking *models.Booking, rows []models.UserProperty, demand Demand) *ReserveNightsCommand {
	return &ReserveNightsCommand{booking: booking, rows: rows, demand: demand}
}

func (c *ReserveNightsCommand) Execute(tx *gorm.DB) error {
	byYear := map[int][]*models.UserProperty{}
	for i := range c.rows {
		row := &c.rows[i]
		byYear[row.Year] = append(byYear[row.Year], row)
	}
	for _, rows := range byYear {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].AcquisitionDate.Equal(rows[j].AcquisitionDate) {
				return rows[i].ID < rows[j].ID
			}
			return rows[i].AcquisitionDate.Before(rows[j].AcquisitionDate)
		})
	}

	var allocations []models.BookingAllocation
	for _, line := range c.demand.Lines() {
		need := line.Nights
		for _, row := range byYear[line.Year] {
			if need == 0 {
				break
			}
			counter := row.Bucket(line.Bucket)
			take := min(need, counter.Remaining)
			if take <= 0 {
				continue
			}
			if err := reserve(tx, row.ID, line.Bucket, take); err != nil {
				return err
			}
			counter.Remaining -= take
			counter.Booked += take
			need -= take
			allocations = append(allocations, models.BookingAllocation{
				BookingID:      c.booking.ID,
				UserPropertyID: row.ID,
				Year:           line.Year,
				Bucket:         line.Bucket,
				Nights:         take,
			})
		}
		if need > 0 {
			return insufficientNights(line, line.Nights-need)
		}
	}

	if len(allocations) > 0 {
		if err := tx.Create(&allocations).Error; err != nil {
			return apperrors.DBError(err)
		}
	}
	c.booking.Allocations = allocations
	return nil
}

func reserve(tx *gorm.DB, rowID uint, bucket types.Bucket, nights int) error {
	remaining := models.BucketColumn(bucket, "remaining")
	booked := models.BucketColumn(bucket, "booked")
	res := tx.Model(&models.UserProperty{}).
		Where(fmt.Sprintf("id = ? AND %s >= ?", remaining), rowID, nights).
		Updates(map[string]any{
			remaining: gorm.Expr(remaining+" - ?", nights),
			booked:    gorm.Expr(booked+" + ?", nights),
		})
	if res.Error != nil {
		return apperrors.DBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.Conflict(apperrors.ErrCodeInsufficientNights, "Số đêm vừa thay đổi, vui lòng thử lại").
			WithDetails(map[string]any{"bucket": bucket, "userPropertyId": rowID})
	}
	return nil
}

func insufficientNights(line Line, available int) *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrCodeInsufficientNights, "Không đủ số đêm để đặt phòng", nil).
		WithDetails(map[string]any{
			"year":      line.Year,
			"bucket":    line.Bucket,
			"requested": line.Nights,
			"available": available,
		})
}

// TransferNightsCommand chuyển số đêm đã đặt của booking sang các cột khác
type TransferNightsCommand struct {
	allocations []models.BookingAllocation
	credit      []string
}

// NewReleaseNightsCommand dùng khi hủy sớm: đêm được trả lại remaining và ghi nhận cancelled
func NewReleaseNightsCommand(allocations []models.BookingAllocation) *TransferNightsCommand {
	return &TransferNightsCommand{allocations: allocations, credit: []string{"cancelled", "remaining"}}
}

// NewForfeitNightsCommand dùng khi hủy muộn: đêm bị mất
func NewForfeitNightsCommand(allocations []models.BookingAllocation) *TransferNightsCommand {
	return &TransferNightsCommand{allocations: allocations, credit: []string{"lost"}}
}

// NewConsumeNightsCommand dùng khi hoàn thành booking
func NewConsumeNightsCommand(allocations []models.BookingAllocation) *TransferNightsCommand {
	return &TransferNightsCommand{allocations: allocations, credit: []string{"used"}}
}

func (c *TransferNightsCommand) Execute(tx *gorm.DB) error {
	for _, a := range c.allocations {
		booked := models.BucketColumn(a.Bucket, "booked")
		updates := map[string]any{booked: gorm.Expr(booked+" - ?", a.Nights)}
		for _, field := range c.credit {
			col := models.BucketColumn(a.Bucket, field)
			updates[col] = gorm.Expr(col+" + ?", a.Nights)
		}
		res := tx.Model(&models.UserProperty{}).
			Where(fmt.Sprintf("id = ? AND %s >= ?", booked), a.UserPropertyID, a.Nights).
			Updates(updates)
		if res.Error != nil {
			return apperrors.DBError(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.Internal(
				fmt.Sprintf("Sổ đêm không khớp cho dòng sở hữu %d", a.UserPropertyID),
				fmt.Errorf("booked %s < %d", a.Bucket, a.Nights),
			)
		}
	}
	return nil
}
