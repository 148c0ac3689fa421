package services

import (
	"fmt"
	"net/http"
	"time"

	apperrors "propshare/errors"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenManager ký và kiểm tra access token HS256
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL là thời hạn của access token
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) GenerateToken(userInfo UserInfo) (string, error) {
	now := m.now()
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseToken kiểm tra chữ ký, thời hạn và trả về userID, role
func (m *TokenManager) ParseToken(tokenString string) (uint, int, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, 0, apperrors.Wrap(err, apperrors.ErrCodeInvalidToken, "Token không hợp lệ", http.StatusUnauthorized)
	}
	if claims.UserInfo.UserId == 0 {
		return 0, 0, apperrors.Wrap(nil, apperrors.ErrCodeInvalidToken, "Không tìm thấy thông tin user trong token", http.StatusUnauthorized)
	}
	return claims.UserInfo.UserId, claims.UserInfo.Role, nil
}
