package services

import (
	"context"
	"testing"

	"propshare/models"
	"propshare/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeInput(t *testing.T) {
	assert.Equal(t, "biet thu da lat", normalizeInput("  Biệt Thự Đà Lạt "))
	assert.Equal(t, "", normalizeInput("   "))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("abc", "abc"))
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.InDelta(t, 0.5, calculateSimilarity("nhat", "nhan"), 0.001)
	assert.Less(t, calculateSimilarity("villa", "can ho"), 0.5)
}

func TestRankProperties(t *testing.T) {
	properties := []models.Property{
		{ID: 1, Name: "Căn hộ Nha Trang", Address: "Khánh Hòa"},
		{ID: 2, Name: "Biệt thự Đà Lạt", Address: "Lâm Đồng", Amenities: []models.Amenity{{Name: "Hồ bơi"}}},
		{ID: 3, Name: "Biệt thự Phú Quốc", Address: "Kiên Giang"},
	}

	got := RankProperties("biet thu da lat", properties)
	require.NotEmpty(t, got)
	assert.Equal(t, uint(2), got[0].ID)

	// lỗi chính tả vẫn tìm được
	got = RankProperties("biet thu da lac", properties)
	require.NotEmpty(t, got)
	assert.Equal(t, uint(2), got[0].ID)

	got = RankProperties("khanh hoa", properties)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)

	got = RankProperties("ho boi", properties)
	require.Len(t, got, 1)
	assert.Equal(t, uint(2), got[0].ID)

	assert.Empty(t, RankProperties("zzzzzzzz", properties))
	assert.Len(t, RankProperties("  ", properties), 3)
}

func TestPropertyListFuzzyQuery(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	props := NewPropertyService(db, nil, nil)
	for _, name := range []string{"Căn hộ Nha Trang", "Biệt thự Đà Lạt"} {
		_, err := props.Create(ctx, PropertyInput{Name: name, PropertyShare: 8})
		require.NoError(t, err)
	}

	list, total, err := props.List(ctx, PropertyFilter{Query: "nha trag"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "Căn hộ Nha Trang", list[0].Name)
}
