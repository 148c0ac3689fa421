package builders

import (
	"time"

	"propshare/models"
	"propshare/types"
)

// UserPropertyBuilder giúp tạo dòng sở hữu theo từng bước
type UserPropertyBuilder struct {
	row models.UserProperty
}

// NewUserPropertyBuilder tạo instance mới của UserPropertyBuilder
func NewUserPropertyBuilder() *UserPropertyBuilder {
	return &UserPropertyBuilder{}
}

// WithOwner thêm chủ sở hữu và người tạo
func (b *UserPropertyBuilder) WithOwner(userID, createdBy uint) *UserPropertyBuilder {
	b.row.UserID = userID
	b.row.CreatedBy = createdBy
	return b
}

// WithProperty thêm bất động sản
func (b *UserPropertyBuilder) WithProperty(propertyID uint) *UserPropertyBuilder {
	b.row.PropertyID = propertyID
	return b
}

// WithAcquisition thêm thông tin lần mua cổ phần
func (b *UserPropertyBuilder) WithAcquisition(acquisitionID string, shares int, acquiredAt time.Time) *UserPropertyBuilder {
	b.row.AcquisitionID = acquisitionID
	b.row.NoOfShare = shares
	b.row.AcquisitionDate = acquiredAt
	return b
}

// WithYear thêm năm sử dụng
func (b *UserPropertyBuilder) WithYear(year int) *UserPropertyBuilder {
	b.row.Year = year
	return b
}

// WithMaximumStayLength thêm số đêm tối đa mỗi lần ở
func (b *UserPropertyBuilder) WithMaximumStayLength(nights int) *UserPropertyBuilder {
	b.row.MaximumStayLength = nights
	return b
}

// WithNights cấp số đêm cho bucket (allotted = remaining)
func (b *UserPropertyBuilder) WithNights(bucket types.Bucket, nights int) *UserPropertyBuilder {
	if n := b.row.Bucket(bucket); n != nil {
		n.Grant(nights)
	}
	return b
}

// Build tạo dòng sở hữu hoàn chỉnh
func (b *UserPropertyBuilder) Build() models.UserProperty {
	return b.row
}
