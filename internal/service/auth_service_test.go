package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthFixtures(t *testing.T) (*AuthService, *recordingMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig(t)
	mailer := &recordingMailer{}
	svc := NewAuthService(repository.NewUserRepository(db), mailer, cfg)
	return svc, mailer, db
}

func registerUser(t *testing.T, svc *AuthService, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "Test Learner",
		Email:    email,
		Password: "password123",
		Role:     model.Learner,
	}
	require.NoError(t, svc.Register(user))
	return user
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixtures(t)
	registerUser(t, svc, "dup@test.io")

	err := svc.Register(&model.User{
		Name: "Another", Email: "dup@test.io", Password: "password456", Role: model.Learner,
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _, db := newAuthFixtures(t)
	registerUser(t, svc, "hash@test.io")

	var stored model.User
	require.NoError(t, db.Where("email = ?", "hash@test.io").First(&stored).Error)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NotEmpty(t, stored.VerifyToken)
	assert.False(t, stored.IsVerified)
}

func TestLoginAndTokenKinds(t *testing.T) {
	svc, _, _ := newAuthFixtures(t)
	registerUser(t, svc, "login@test.io")

	pair, err := svc.Login("login@test.io", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := util.ParseJWT(pair.AccessToken, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, util.TokenAccess, access.Kind)

	refresh, err := util.ParseJWT(pair.RefreshToken, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, util.TokenRefresh, refresh.Kind)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixtures(t)
	registerUser(t, svc, "login@test.io")

	_, err := svc.Login("login@test.io", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@test.io", "password123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	svc, _, db := newAuthFixtures(t)
	registerUser(t, svc, "disabled@test.io")
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "disabled@test.io").Update("is_active", false).Error)

	_, err := svc.Login("disabled@test.io", "password123")
	assert.ErrorIs(t, err, util.ErrUserDisabled)
}

func TestRefreshRotation(t *testing.T) {
	svc, _, _ := newAuthFixtures(t)
	registerUser(t, svc, "rotate@test.io")

	pair, err := svc.Login("rotate@test.io", "password123")
	require.NoError(t, err)

	rotated, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// 旧刷新令牌已作废
	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, util.ErrRefreshMismatch)

	// 新令牌继续可用
	_, err = svc.Refresh(rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthFixtures(t)
	registerUser(t, svc, "kinds@test.io")

	pair, err := svc.Login("kinds@test.io", "password123")
	require.NoError(t, err)

	// 访问令牌不能当刷新令牌用
	_, err = svc.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, util.ErrInvalidToken)
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	svc, _, db := newAuthFixtures(t)
	user := registerUser(t, svc, "logout@test.io")

	pair, err := svc.Login("logout@test.io", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID))

	var stored model.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Empty(t, stored.RefreshToken)

	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, util.ErrRefreshMismatch)
}

func TestVerifyEmailFlow(t *testing.T) {
	svc, _, db := newAuthFixtures(t)
	registerUser(t, svc, "verify@test.io")

	var stored model.User
	require.NoError(t, db.Where("email = ?", "verify@test.io").First(&stored).Error)

	require.NoError(t, svc.VerifyEmail(stored.VerifyToken))

	require.NoError(t, db.First(&stored, stored.ID).Error)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerifyToken)

	// 令牌一次性，再用报错
	assert.ErrorIs(t, svc.VerifyEmail("no-such-token"), util.ErrInvalidToken)
}

func TestResetPasswordFlow(t *testing.T) {
	svc, _, db := newAuthFixtures(t)
	registerUser(t, svc, "reset@test.io")

	require.NoError(t, svc.ForgotPassword("reset@test.io"))
	// 未注册邮箱同样返回成功
	require.NoError(t, svc.ForgotPassword("stranger@test.io"))

	var stored model.User
	require.NoError(t, db.Where("email = ?", "reset@test.io").First(&stored).Error)
	require.NotEmpty(t, stored.ResetToken)

	require.NoError(t, svc.ResetPassword(stored.ResetToken, "newpassword456"))

	_, err := svc.Login("reset@test.io", "password123")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	_, err = svc.Login("reset@test.io", "newpassword456")
	require.NoError(t, err)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, _, db := newAuthFixtures(t)
	registerUser(t, svc, "expired@test.io")

	require.NoError(t, svc.ForgotPassword("expired@test.io"))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "expired@test.io").
		Update("reset_token_expires", &past).Error)

	var stored model.User
	require.NoError(t, db.Where("email = ?", "expired@test.io").First(&stored).Error)

	err := svc.ResetPassword(stored.ResetToken, "newpassword456")
	assert.ErrorIs(t, err, util.ErrResetTokenExpired)
}
