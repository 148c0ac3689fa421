package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"propshare/constants"
	apperrors "propshare/errors"
	"propshare/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, _ string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject})
	return f.err
}

type fakeGoogle struct {
	profile *GoogleProfile
	err     error
}

func (f fakeGoogle) Verify(context.Context, string) (*GoogleProfile, error) {
	return f.profile, f.err
}

func newAuth(t *testing.T, google GoogleVerifier) (*AuthService, *fakeMailer, *TokenManager) {
	db := testutil.NewDB(t)
	mailer := &fakeMailer{}
	tokens := NewTokenManager("secret", time.Hour)
	return NewAuthService(AuthServiceOptions{DB: db, Tokens: tokens, Google: google, Mailer: mailer}), mailer, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, mailer, tokens := newAuth(t, nil)

	user, err := auth.Register(ctx, RegisterInput{Name: "An", Email: " An@Example.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", user.Email)
	assert.Equal(t, constants.RoleOwner, user.Role)
	assert.NotEqual(t, "secret123", user.Password)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "an@example.com", mailer.sent[0].to)

	token, logged, err := auth.Login(ctx, "an@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	userID, role, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, constants.RoleOwner, role)

	_, _, err = auth.Login(ctx, "an@example.com", "wrong-password")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidPassword))
	_, _, err = auth.Login(ctx, "nobody@example.com", "secret123")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidPassword))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuth(t, nil)

	_, err := auth.Register(ctx, RegisterInput{Email: "an@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = auth.Register(ctx, RegisterInput{Email: "AN@example.com", Password: "secret123"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUserExists))
}

func TestRegisterMailFailureDoesNotFail(t *testing.T) {
	auth, mailer, _ := newAuth(t, nil)
	mailer.err = errors.New("smtp down")

	_, err := auth.Register(context.Background(), RegisterInput{Email: "an@example.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuth(t, nil)
	user, err := auth.Register(ctx, RegisterInput{Email: "an@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, auth.db.Model(user).Update("status", constants.UserStatusInactive).Error)

	_, _, err = auth.Login(ctx, "an@example.com", "secret123")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
}

func TestLoginWithGoogleCreatesUserOnce(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuth(t, fakeGoogle{profile: &GoogleProfile{Email: "G@example.com", Name: "Giang"}})

	_, first, err := auth.LoginWithGoogle(ctx, "token")
	require.NoError(t, err)
	assert.True(t, first.IsVerified)
	_, second, err := auth.LoginWithGoogle(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestLoginWithGoogleErrors(t *testing.T) {
	auth, _, _ := newAuth(t, nil)
	_, _, err := auth.LoginWithGoogle(context.Background(), "token")
	assert.Equal(t, 501, apperrors.GetAppError(err).StatusCode())

	auth, _, _ = newAuth(t, fakeGoogle{err: errors.New("bad token")})
	_, _, err = auth.LoginWithGoogle(context.Background(), "token")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidToken))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newAuth(t, nil)
	user, err := auth.Register(ctx, RegisterInput{Email: "an@example.com", Password: "secret123"})
	require.NoError(t, err)

	err = auth.ChangePassword(ctx, user.ID, "wrong", "newsecret1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidPassword))

	require.NoError(t, auth.ChangePassword(ctx, user.ID, "secret123", "newsecret1"))
	_, _, err = auth.Login(ctx, "an@example.com", "newsecret1")
	assert.NoError(t, err)
}
