package types

// Bucket là nhóm đêm được phân bổ cho mỗi năm sở hữu
type Bucket string

const (
	BucketPeak        Bucket = "peak"
	BucketOff         Bucket = "off"
	BucketPeakHoliday Bucket = "peak_holiday"
	BucketOffHoliday  Bucket = "off_holiday"
	BucketLastMinute  Bucket = "last_minute"
)

// AllBuckets theo thứ tự cố định, dùng khi duyệt và trừ đêm
var AllBuckets = []Bucket{
	BucketPeak,
	BucketOff,
	BucketPeakHoliday,
	BucketOffHoliday,
	BucketLastMinute,
}

func (b Bucket) Valid() bool {
	for _, bucket := range AllBuckets {
		if bucket == b {
			return true
		}
	}
	return false
}

func (b Bucket) String() string {
	return string(b)
}
