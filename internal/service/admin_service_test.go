package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAdminFixtures(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAdminService(
		repository.NewUserRepository(db),
		repository.NewAdminLogRepository(db),
	)
	return svc, db
}

func TestChangeRoleWritesAuditLog(t *testing.T) {
	svc, db := newAdminFixtures(t)
	admin := createTestUser(t, db, "admin@test.io")
	target := createTestUser(t, db, "learner@test.io")

	updated, err := svc.ChangeRole(admin.ID, target.ID, model.Curator)
	require.NoError(t, err)
	assert.Equal(t, model.Curator, updated.Role)

	logs, total, err := svc.ListActionLogs(1, 10, admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	assert.Equal(t, "change_role", logs[0].Action)
	assert.Equal(t, target.ID, logs[0].TargetID)
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	svc, db := newAdminFixtures(t)
	admin := createTestUser(t, db, "admin@test.io")
	target := createTestUser(t, db, "learner@test.io")

	_, err := svc.ChangeRole(admin.ID, target.ID, model.UserRole("superuser"))
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestDeactivateClearsRefreshToken(t *testing.T) {
	svc, db := newAdminFixtures(t)
	admin := createTestUser(t, db, "admin@test.io")
	target := createTestUser(t, db, "learner@test.io")
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", target.ID).
		Update("refresh_token", "some-refresh-token").Error)

	require.NoError(t, svc.DeactivateUser(admin.ID, target.ID))

	var stored model.User
	require.NoError(t, db.First(&stored, target.ID).Error)
	assert.False(t, stored.IsActive)
	assert.Empty(t, stored.RefreshToken)

	require.NoError(t, svc.ReactivateUser(admin.ID, target.ID))
	require.NoError(t, db.First(&stored, target.ID).Error)
	assert.True(t, stored.IsActive)

	// 停用与恢复各留一条审计
	_, total, err := svc.ListActionLogs(1, 10, admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestResetUserPasswordRotatesCredentials(t *testing.T) {
	svc, db := newAdminFixtures(t)
	admin := createTestUser(t, db, "admin@test.io")
	target := createTestUser(t, db, "learner@test.io")
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", target.ID).
		Update("refresh_token", "some-refresh-token").Error)

	tempPassword, err := svc.ResetUserPassword(admin.ID, target.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, tempPassword)

	var stored model.User
	require.NoError(t, db.First(&stored, target.ID).Error)
	assert.Empty(t, stored.RefreshToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(tempPassword)))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))

	logs, _, err := svc.ListActionLogs(1, 10, admin.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "reset_password", logs[0].Action)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := newAdminFixtures(t)
	_, err := svc.GetUser(999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestDeactivateUnknownUser(t *testing.T) {
	svc, db := newAdminFixtures(t)
	admin := createTestUser(t, db, "admin@test.io")

	err := svc.DeactivateUser(admin.ID, 999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
