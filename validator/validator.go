package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	apperrors "propshare/errors"
	"propshare/models"
	"propshare/utils"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

	once     sync.Once
	validate *playground.Validate
)

func engine() *playground.Validate {
	once.Do(func() {
		validate = playground.New()
		registerCustom(validate)
	})
	return validate
}

func registerCustom(v *playground.Validate) {
	_ = v.RegisterValidation("ddmmyyyy", validateDate)
	_ = v.RegisterValidation("vnphone", validatePhoneField)
}

// RegisterGinValidators đăng ký tag tùy chỉnh cho binding của gin
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("ddmmyyyy", validateDate); err != nil {
		return err
	}
	return v.RegisterValidation("vnphone", validatePhoneField)
}

func validateDate(fl playground.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := utils.ParseDate(value)
	return err == nil
}

func validatePhoneField(fl playground.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	return value == "" || phoneRegex.MatchString(value)
}

// Struct kiểm tra struct tag, lỗi được gom vào details theo tên field
func Struct(s interface{}) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}
	return Translate(err)
}

// Translate chuyển lỗi của validator (kể cả từ gin binding) thành AppError
func Translate(err error) error {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.Validation("Dữ liệu không hợp lệ", map[string]any{"error": err.Error()})
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[lowerFirst(fe.Field())] = message(fe)
	}
	return apperrors.Validation("Dữ liệu không hợp lệ", details)
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "không được để trống"
	case "email":
		return "email không hợp lệ"
	case "min":
		return fmt.Sprintf("phải lớn hơn hoặc bằng %s", fe.Param())
	case "max":
		return fmt.Sprintf("phải nhỏ hơn hoặc bằng %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("phải là một trong [%s]", fe.Param())
	case "ddmmyyyy":
		return "ngày phải có dạng dd/mm/yyyy"
	case "vnphone":
		return "số điện thoại phải gồm 10 chữ số"
	}
	return fmt.Sprintf("không hợp lệ (%s)", fe.Tag())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ValidateEmail kiểm tra email hợp lệ
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidEmail, "Email không hợp lệ", nil)
	}
	return nil
}

// ValidatePhone kiểm tra số điện thoại hợp lệ
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidPhone, "Số điện thoại không hợp lệ", nil)
	}
	return nil
}

// ValidatePassword kiểm tra mật khẩu hợp lệ
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "Mật khẩu phải có ít nhất 8 ký tự", nil)
	}
	return nil
}

// ValidateUser validate thông tin đăng ký
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Email không được để trống", nil)
	}
	if err := ValidateEmail(user.Email); err != nil {
		return err
	}
	if user.Password == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Mật khẩu không được để trống", nil)
	}
	if err := ValidatePassword(user.Password); err != nil {
		return err
	}
	if user.PhoneNumber != "" {
		if err := ValidatePhone(user.PhoneNumber); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRole kiểm tra role nằm trong bảng roles
func ValidateRole(role int, known []models.Role) error {
	for _, r := range known {
		if r.ID == role {
			return nil
		}
	}
	return apperrors.NewAppError(apperrors.ErrCodeInvalidRole, "Role không hợp lệ", nil)
}

func ValidateHoliday(holiday *models.Holiday) error {
	if strings.TrimSpace(holiday.Name) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Tên ngày nghỉ không được để trống", nil)
	}
	if holiday.FromDate.IsZero() || holiday.ToDate.IsZero() {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Ngày bắt đầu và kết thúc không được để trống", nil)
	}
	if utils.DateOnly(holiday.ToDate).Before(utils.DateOnly(holiday.FromDate)) {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Ngày kết thúc phải sau ngày bắt đầu", nil)
	}
	return nil
}

// ValidateProperty kiểm tra tên, cổ phần và trạng thái
func ValidateProperty(property *models.Property) error {
	if strings.TrimSpace(property.Name) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Tên bất động sản không được để trống", nil)
	}
	if err := property.ValidateShares(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Số cổ phần không hợp lệ", err)
	}
	if err := property.ValidateStatus(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Trạng thái không hợp lệ", err)
	}
	return nil
}

// ValidatePropertyDetails kiểm tra mùa cao điểm, số đêm và rule đặt phòng
func ValidatePropertyDetails(details *models.PropertyDetails) error {
	if details.PeakSeasonStartDate.IsZero() || details.PeakSeasonEndDate.IsZero() {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Mùa cao điểm phải có ngày bắt đầu và kết thúc", nil)
	}
	nights := map[string]int{
		"peakSeasonAllottedNights":        details.PeakSeasonAllottedNights,
		"offSeasonAllottedNights":         details.OffSeasonAllottedNights,
		"peakSeasonAllottedHolidayNights": details.PeakSeasonAllottedHolidayNights,
		"offSeasonAllottedHolidayNights":  details.OffSeasonAllottedHolidayNights,
		"lastMinuteBookingAllottedNights": details.LastMinuteBookingAllottedNights,
	}
	for field, n := range nights {
		if n < 0 {
			return apperrors.Validation("Số đêm không được âm", map[string]any{field: n})
		}
	}
	list, err := details.Rules()
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Rule đặt phòng không hợp lệ", err).
			WithDetails(map[string]any{"error": err.Error()})
	}
	for i := range list {
		if err := list[i].Validate(); err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Rule đặt phòng không hợp lệ", err).
				WithDetails(map[string]any{"rule": list[i].Name, "error": err.Error()})
		}
	}
	return nil
}
