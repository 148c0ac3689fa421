package services

import (
	"context"
	"testing"

	"propshare/constants"
	apperrors "propshare/errors"
	"propshare/models"
	"propshare/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedAmenities(t *testing.T, svc *AmenityService, names ...string) []models.Amenity {
	t.Helper()
	list := make([]models.Amenity, 0, len(names))
	for _, n := range names {
		list = append(list, models.Amenity{Name: n, Status: constants.AmenityStatusActive})
	}
	created, err := svc.CreateBatch(context.Background(), list)
	require.NoError(t, err)
	return created
}

func TestPropertyCreateWithAmenities(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	amenities := seedAmenities(t, NewAmenityService(db, nil, nil), "Hồ bơi", "Wifi")

	p, err := props.Create(ctx, PropertyInput{
		Name:          "  Biệt thự Đà Lạt ",
		Address:       "Đà Lạt",
		PropertyShare: 8,
		AmenityIDs:    []uint{amenities[0].ID, amenities[1].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Biệt thự Đà Lạt", p.Name)
	assert.Equal(t, 8, p.PropertyRemainingShare)
	assert.Len(t, p.Amenities, 2)

	_, err = props.Create(ctx, PropertyInput{Name: "X", PropertyShare: 1, AmenityIDs: []uint{999}})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))

	_, err = props.Create(ctx, PropertyInput{Name: "", PropertyShare: 1})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRequiredField))
}

func TestPropertyUpdateKeepsSoldShares(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	p, err := props.Create(ctx, PropertyInput{Name: "Villa", PropertyShare: 8})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Property{}).Where("id = ?", p.ID).Update("property_remaining_share", 5).Error)

	updated, err := props.Update(ctx, p.ID, PropertyInput{PropertyShare: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.PropertyShare)
	assert.Equal(t, 7, updated.PropertyRemainingShare)

	_, err = props.Update(ctx, p.ID, PropertyInput{PropertyShare: 2})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientShares))

	_, err = props.Update(ctx, 999, PropertyInput{Name: "x"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePropertyNotFound))
}

// sellDuringRead giả lập một lần mua cổ phần commit ngay sau khi Update đọc bất động sản
func sellDuringRead(t *testing.T, db *gorm.DB, propertyID uint, shares int) (arm func()) {
	t.Helper()
	armed := false
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:sell_during_read", func(tx *gorm.DB) {
		if !armed || tx.Statement.Table != "properties" {
			return
		}
		armed = false
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE properties SET property_remaining_share = property_remaining_share - ? WHERE id = ?", shares, propertyID).Error)
	}))
	return func() { armed = true }
}

func TestPropertyUpdateDoesNotRestoreSoldShares(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	p, err := props.Create(ctx, PropertyInput{Name: "Villa", PropertyShare: 8})
	require.NoError(t, err)

	arm := sellDuringRead(t, db, p.ID, 2)

	arm()
	updated, err := props.Update(ctx, p.ID, PropertyInput{Name: "Villa mới"})
	require.NoError(t, err)
	assert.Equal(t, "Villa mới", updated.Name)
	assert.Equal(t, 8, updated.PropertyShare)
	assert.Equal(t, 6, updated.PropertyRemainingShare)

	arm()
	updated, err = props.Update(ctx, p.ID, PropertyInput{PropertyShare: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.PropertyShare)
	assert.Equal(t, 6, updated.PropertyRemainingShare)
}

func TestPropertyCreateHidden(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	hidden := constants.PropertyStatusHidden

	p, err := props.Create(ctx, PropertyInput{Name: "Villa ẩn", PropertyShare: 4, Status: &hidden})
	require.NoError(t, err)
	assert.Equal(t, constants.PropertyStatusHidden, p.Status)

	var stored models.Property
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, constants.PropertyStatusHidden, stored.Status)

	p, err = props.Create(ctx, PropertyInput{Name: "Villa mở", PropertyShare: 4})
	require.NoError(t, err)
	assert.Equal(t, constants.PropertyStatusActive, p.Status)
}

func TestPropertyUpsertDetails(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	p, err := props.Create(ctx, PropertyInput{Name: "Villa", PropertyShare: 4})
	require.NoError(t, err)

	details := models.PropertyDetails{
		PeakSeasonStartDate:      testutil.Date(2025, 6, 1),
		PeakSeasonEndDate:        testutil.Date(2025, 8, 31),
		PeakSeasonAllottedNights: 10,
		OffSeasonAllottedNights:  20,
	}
	first, err := props.UpsertDetails(ctx, p.ID, details)
	require.NoError(t, err)

	details.OffSeasonAllottedNights = 25
	second, err := props.UpsertDetails(ctx, p.ID, details)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.PropertyDetails{}).Where("property_id = ?", p.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := props.Get(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Details)
	assert.Equal(t, 25, got.Details.OffSeasonAllottedNights)

	details.BookingRules = datatypes.JSON(`[{"name":"x","conditions":{"fact":"guests","operator":"bogus","value":1}}]`)
	_, err = props.UpsertDetails(ctx, p.ID, details)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFormat))

	details.BookingRules = nil
	details.PeakSeasonAllottedNights = -1
	_, err = props.UpsertDetails(ctx, p.ID, details)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestPropertyListFilterAndPaging(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	hidden := constants.PropertyStatusHidden
	for _, in := range []PropertyInput{
		{Name: "Biệt thự Đà Lạt", PropertyShare: 8},
		{Name: "Căn hộ Nha Trang", PropertyShare: 8},
		{Name: "Biệt thự Phú Quốc", PropertyShare: 8, Status: &hidden},
	} {
		_, err := props.Create(ctx, in)
		require.NoError(t, err)
	}

	list, total, err := props.List(ctx, PropertyFilter{Name: "biet thu"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 2)

	active := constants.PropertyStatusActive
	_, total, err = props.List(ctx, PropertyFilter{Status: &active})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	page, total, err := props.List(ctx, PropertyFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)

	empty, _, err := props.List(ctx, PropertyFilter{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPropertyDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	amenities := seedAmenities(t, NewAmenityService(db, nil, nil), "Wifi")

	p, err := props.Create(ctx, PropertyInput{Name: "Villa", PropertyShare: 4, AmenityIDs: []uint{amenities[0].ID}})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Document{PropertyID: p.ID, PublicID: "doc-1"}).Error)
	err = props.Delete(ctx, p.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConflict))
	require.NoError(t, db.Where("property_id = ?", p.ID).Delete(&models.Document{}).Error)

	owner := testutil.SeedUser(t, db, "owner@example.com")
	require.NoError(t, db.Create(&models.UserProperty{UserID: owner.ID, PropertyID: p.ID, AcquisitionID: "acq-1", NoOfShare: 1, Year: 2025}).Error)
	err = props.Delete(ctx, p.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConflict))
	require.NoError(t, db.Where("property_id = ?", p.ID).Delete(&models.UserProperty{}).Error)

	require.NoError(t, props.Delete(ctx, p.ID))
	_, err = props.Get(ctx, p.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePropertyNotFound))
}

func TestSetAmenities(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	amenities := seedAmenities(t, NewAmenityService(db, nil, nil), "Wifi", "Hồ bơi")
	p, err := props.Create(ctx, PropertyInput{Name: "Villa", PropertyShare: 4, AmenityIDs: []uint{amenities[0].ID}})
	require.NoError(t, err)

	got, err := props.SetAmenities(ctx, p.ID, []uint{amenities[1].ID})
	require.NoError(t, err)
	require.Len(t, got.Amenities, 1)
	assert.Equal(t, "Hồ bơi", got.Amenities[0].Name)

	got, err = props.SetAmenities(ctx, p.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Amenities)
}
