package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"propshare/constants"
	apperrors "propshare/errors"
	"propshare/models"
	"propshare/services/logger"
	"propshare/validator"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

// Mailer gửi email HTML
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// GoogleProfile là thông tin lấy từ Google ID token
type GoogleProfile struct {
	Email   string
	Name    string
	Picture string
}

type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleProfile, error)
}

// IDTokenVerifier kiểm tra Google ID token bằng google.golang.org/api/idtoken
type IDTokenVerifier struct {
	ClientID string
}

func (v IDTokenVerifier) Verify(ctx context.Context, token string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, token, v.ClientID)
	if err != nil {
		return nil, err
	}
	profile := &GoogleProfile{}
	profile.Email, _ = payload.Claims["email"].(string)
	profile.Name, _ = payload.Claims["name"].(string)
	profile.Picture, _ = payload.Claims["picture"].(string)
	if profile.Email == "" {
		return nil, errors.New("google token has no email")
	}
	return profile, nil
}

type AuthService struct {
	db     *gorm.DB
	tokens *TokenManager
	google GoogleVerifier
	mailer Mailer
	logger logger.Logger
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Tokens *TokenManager
	Google GoogleVerifier
	Mailer Mailer
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	l := opts.Logger
	if l == nil {
		l = logger.NewNop()
	}
	return &AuthService{
		db:     opts.DB,
		tokens: opts.Tokens,
		google: opts.Google,
		mailer: opts.Mailer,
		logger: l,
	}
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// Register tạo tài khoản chủ sở hữu mới
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	user := models.User{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Password:    input.Password,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Role:        constants.RoleOwner,
		Status:      constants.UserStatusActive,
	}
	if err := validator.ValidateUser(&user); err != nil {
		return nil, err
	}
	if user.Name == "" {
		user.Name = "New User"
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return nil, apperrors.DBError(err)
	}
	if count > 0 {
		return nil, apperrors.Conflict(apperrors.ErrCodeUserExists, fmt.Sprintf("Email %s đã được sử dụng", user.Email))
	}

	hashed, err := HashPassword(user.Password)
	if err != nil {
		return nil, apperrors.Internal("Không thể mã hóa mật khẩu", err)
	}
	user.Password = hashed
	if err := db.Create(&user).Error; err != nil {
		return nil, apperrors.DBError(err)
	}

	s.sendWelcome(ctx, &user)
	return &user, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, user *models.User) {
	if s.mailer == nil {
		return
	}
	body := fmt.Sprintf(`<p>Xin chào %s,</p><p>Chúc mừng! Bạn đã tạo tài khoản thành công.</p><p>Xin cảm ơn,<br>Nhóm tài khoản</p>`, user.Name)
	if err := s.mailer.Send(ctx, user.Email, "Bạn đã tạo tài khoản mới", body); err != nil {
		s.logger.Warn("Không gửi được email chào mừng tới %s: %v", user.Email, err)
	}
}

// Login kiểm tra email/mật khẩu và cấp token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperrors.New(apperrors.ErrCodeInvalidPassword, "Email hoặc mật khẩu không đúng", http.StatusUnauthorized)
	}
	if err != nil {
		return "", nil, apperrors.DBError(err)
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, apperrors.New(apperrors.ErrCodeInvalidPassword, "Email hoặc mật khẩu không đúng", http.StatusUnauthorized)
	}
	return s.issue(&user)
}

// LoginWithGoogle đăng nhập bằng Google ID token, tạo user mới nếu chưa có
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	if s.google == nil {
		return "", nil, apperrors.New(apperrors.ErrCodeInvalidOperation, "Chưa cấu hình đăng nhập Google", http.StatusNotImplemented)
	}
	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidToken, "Token Google không hợp lệ", http.StatusUnauthorized)
	}

	email := strings.ToLower(profile.Email)
	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Name:       profile.Name,
			Email:      email,
			Avatar:     profile.Picture,
			IsVerified: true,
			Role:       constants.RoleOwner,
			Status:     constants.UserStatusActive,
		}
		if user.Name == "" {
			user.Name = "New User"
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return "", nil, apperrors.DBError(err)
		}
		s.logger.Info("Tạo user Google mới %s", email)
	case err != nil:
		return "", nil, apperrors.DBError(err)
	}
	return s.issue(&user)
}

func (s *AuthService) issue(user *models.User) (string, *models.User, error) {
	if user.Status != constants.UserStatusActive {
		return "", nil, apperrors.Forbidden(apperrors.ErrCodeForbidden, "Tài khoản đã bị khóa")
	}
	token, err := s.tokens.GenerateToken(UserInfo{UserId: user.ID, Role: user.Role})
	if err != nil {
		return "", nil, apperrors.Internal("Không thể tạo token", err)
	}
	return token, user, nil
}

// ChangePassword đổi mật khẩu sau khi kiểm tra mật khẩu cũ
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound(apperrors.ErrCodeUserNotFound, "Không tìm thấy người dùng")
		}
		return apperrors.DBError(err)
	}
	if user.Password != "" && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidPassword, "Mật khẩu cũ không đúng", nil)
	}
	if err := validator.ValidatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := HashPassword(newPassword)
	if err != nil {
		return apperrors.Internal("Không thể mã hóa mật khẩu", err)
	}
	if err := s.db.WithContext(ctx).Model(&user).Update("password", hashed).Error; err != nil {
		return apperrors.DBError(err)
	}
	if s.mailer != nil {
		if err := s.mailer.Send(ctx, user.Email, "Đổi mật khẩu", "<p>Mật khẩu của bạn đã được cập nhật thành công.</p>"); err != nil {
			s.logger.Warn("Không gửi được email đổi mật khẩu: %v", err)
		}
	}
	return nil
}
