package allocation

import (
	"context"
	"testing"
	"time"

	apperrors "propshare/errors"
	"propshare/models"
	"propshare/services/logger"
	"propshare/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAllocator(db *gorm.DB, now time.Time) *Allocator {
	return NewAllocator(Options{
		DB:     db,
		Logger: logger.NewNop(),
		Clock:  testutil.FixedClock(now),
	})
}

func remainingShares(t *testing.T, db *gorm.DB, propertyID uint) int {
	t.Helper()
	var p models.Property
	require.NoError(t, db.First(&p, propertyID).Error)
	return p.PropertyRemainingShare
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.UserProperty{}).Count(&n).Error)
	return n
}

func TestAllocateEndToEnd(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	property := testutil.SeedProperty(t, db, 4, *sampleDetails())

	now := day(2025, time.March, 10)
	acquired := day(2025, time.January, 1)
	rows, err := newAllocator(db, now).Allocate(context.Background(), Request{
		UserID:    user.ID,
		CreatedBy: 99,
		Entries:   []Entry{{PropertyID: property.ID, NoOfShares: 2, AcquisitionDate: acquired}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	daysRemaining := 364
	assert.Equal(t, 2*10*daysRemaining/AdjustedDaysInYear(2025), rows[0].PeakSeason.Allotted)
	for _, row := range rows[1:] {
		assert.Equal(t, 20, row.PeakSeason.Allotted)
		assert.Equal(t, 20, row.PeakSeason.Remaining)
	}
	assert.Equal(t, 2, remainingShares(t, db, property.ID))

	var stored []models.UserProperty
	require.NoError(t, db.Order("year").Find(&stored).Error)
	require.Len(t, stored, 4)
	assert.Equal(t, []int{2025, 2026, 2027, 2028}, []int{stored[0].Year, stored[1].Year, stored[2].Year, stored[3].Year})
	assert.Equal(t, rows[0].AcquisitionID, stored[3].AcquisitionID)
	assert.Equal(t, uint(99), stored[0].CreatedBy)
	assert.True(t, stored[0].Balanced())
}

func TestAllocateInsufficientShares(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	property := testutil.SeedProperty(t, db, 4, *sampleDetails())

	_, err := newAllocator(db, day(2025, time.March, 10)).Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: property.ID, NoOfShares: 5, AcquisitionDate: day(2025, time.January, 1)}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientShares))
	assert.Equal(t, 4, remainingShares(t, db, property.ID))
	assert.Zero(t, countRows(t, db))
}

func TestAllocateRollsBackWholeBatch(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	first := testutil.SeedProperty(t, db, 4, *sampleDetails())
	second := testutil.SeedProperty(t, db, 1, *sampleDetails())

	_, err := newAllocator(db, day(2025, time.March, 10)).Allocate(context.Background(), Request{
		UserID: user.ID,
		Entries: []Entry{
			{PropertyID: first.ID, NoOfShares: 2, AcquisitionDate: day(2025, time.January, 1)},
			{PropertyID: second.ID, NoOfShares: 3, AcquisitionDate: day(2025, time.January, 1)},
		},
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientShares))
	assert.Equal(t, 4, remainingShares(t, db, first.ID))
	assert.Equal(t, 1, remainingShares(t, db, second.ID))
	assert.Zero(t, countRows(t, db))
}

func TestAllocateSamePropertyTwiceInBatch(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	property := testutil.SeedProperty(t, db, 4, *sampleDetails())

	_, err := newAllocator(db, day(2025, time.March, 10)).Allocate(context.Background(), Request{
		UserID: user.ID,
		Entries: []Entry{
			{PropertyID: property.ID, NoOfShares: 3, AcquisitionDate: day(2025, time.January, 1)},
			{PropertyID: property.ID, NoOfShares: 2, AcquisitionDate: day(2025, time.February, 1)},
		},
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientShares))
	assert.Equal(t, 4, remainingShares(t, db, property.ID))
}

func TestAllocateRejectsFutureAcquisition(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	property := testutil.SeedProperty(t, db, 4, *sampleDetails())
	a := newAllocator(db, day(2025, time.March, 10))

	_, err := a.Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: property.ID, NoOfShares: 2, AcquisitionDate: day(2026, time.January, 15)}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	assert.Equal(t, 4, remainingShares(t, db, property.ID))
	assert.Zero(t, countRows(t, db))

	// Mua ngay trong ngày hôm nay vẫn hợp lệ
	rows, err := a.Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: property.ID, NoOfShares: 1, AcquisitionDate: day(2025, time.March, 10)}},
	})
	require.NoError(t, err)
	assert.Len(t, rows, ForwardYears+1)
}

func TestAllocateNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	a := newAllocator(db, day(2025, time.March, 10))

	_, err := a.Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: 999, NoOfShares: 1, AcquisitionDate: day(2025, time.January, 1)}},
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePropertyNotFound))

	bare := models.Property{Name: "No details", PropertyShare: 2, PropertyRemainingShare: 2}
	require.NoError(t, db.Create(&bare).Error)
	_, err = a.Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: bare.ID, NoOfShares: 1, AcquisitionDate: day(2025, time.January, 1)}},
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePropertyDetailsNotFound))
	assert.Equal(t, 2, remainingShares(t, db, bare.ID))

	_, err = a.Allocate(context.Background(), Request{
		UserID:  12345,
		Entries: []Entry{{PropertyID: bare.ID, NoOfShares: 1, AcquisitionDate: day(2025, time.January, 1)}},
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUserNotFound))

	_, err = a.Allocate(context.Background(), Request{UserID: user.ID})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestRemoveAcquisition(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	property := testutil.SeedProperty(t, db, 4, *sampleDetails())
	a := newAllocator(db, day(2025, time.March, 10))

	rows, err := a.Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: property.ID, NoOfShares: 3, AcquisitionDate: day(2025, time.January, 1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, remainingShares(t, db, property.ID))

	require.NoError(t, a.Remove(context.Background(), rows[0].AcquisitionID))
	assert.Equal(t, 4, remainingShares(t, db, property.ID))
	assert.Zero(t, countRows(t, db))

	err = a.Remove(context.Background(), rows[0].AcquisitionID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAcquisitionNotFound))
}

func TestRemoveAcquisitionWithBookings(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	property := testutil.SeedProperty(t, db, 4, *sampleDetails())
	a := newAllocator(db, day(2025, time.March, 10))

	rows, err := a.Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: property.ID, NoOfShares: 1, AcquisitionDate: day(2025, time.January, 1)}},
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.UserProperty{}).Where("id = ?", rows[1].ID).
		Updates(map[string]any{"off_remaining": 15, "off_booked": 5}).Error)

	err = a.Remove(context.Background(), rows[0].AcquisitionID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAcquisitionInUse))
	assert.Equal(t, 3, remainingShares(t, db, property.ID))
	assert.EqualValues(t, 4, countRows(t, db))
}

func TestRollover(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	property := testutil.SeedProperty(t, db, 4, *sampleDetails())

	rows, err := newAllocator(db, day(2025, time.September, 15)).Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: property.ID, NoOfShares: 2, AcquisitionDate: day(2025, time.September, 15)}},
	})
	require.NoError(t, err)

	later := newAllocator(db, day(2027, time.January, 1))
	pending, err := later.PendingRollovers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{rows[0].AcquisitionID}, pending)

	created, err := later.ExtendAcquisition(context.Background(), rows[0].AcquisitionID)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	var added []models.UserProperty
	require.NoError(t, db.Where("year > ?", 2028).Order("year").Find(&added).Error)
	require.Len(t, added, 2)
	assert.Equal(t, 2029, added[0].Year)
	assert.Equal(t, 2030, added[1].Year)
	for _, row := range added {
		assert.Equal(t, 20, row.PeakSeason.Allotted)
		assert.Equal(t, 40, row.OffSeason.Allotted)
		assert.Equal(t, 6, row.PeakHoliday.Allotted)
		assert.Equal(t, 16, row.LastMinute.Remaining)
	}

	created, err = later.ExtendAcquisition(context.Background(), rows[0].AcquisitionID)
	require.NoError(t, err)
	assert.Zero(t, created)

	pending, err = later.PendingRollovers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestList(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, "owner@example.com")
	property := testutil.SeedProperty(t, db, 4, *sampleDetails())
	a := newAllocator(db, day(2025, time.March, 10))

	_, err := a.Allocate(context.Background(), Request{
		UserID:  user.ID,
		Entries: []Entry{{PropertyID: property.ID, NoOfShares: 1, AcquisitionDate: day(2025, time.January, 1)}},
	})
	require.NoError(t, err)

	rows, err := a.List(context.Background(), ListFilter{UserID: user.ID, Year: 2026})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Property)
	assert.Equal(t, "Villa Test", rows[0].Property.Name)

	rows, err = a.List(context.Background(), ListFilter{UserID: user.ID + 1})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
