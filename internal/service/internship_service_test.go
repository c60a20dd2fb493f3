package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInternshipFixtures(t *testing.T) (*InternshipService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewInternshipService(repository.NewInternshipRepository(db))
	return svc, db
}

func createTestInternship(t *testing.T, db *gorm.DB, title string) *model.Internship {
	t.Helper()
	item := &model.Internship{
		Title:   title,
		Company: "CorpReady Labs",
		Mode:    "remote",
		Source:  model.InternshipSourceAdmin,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestApplyOnlyOnce(t *testing.T) {
	svc, db := newInternshipFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	item := createTestInternship(t, db, "Backend Intern")

	require.NoError(t, svc.Apply(user.ID, item.ID))

	// 重复投递同一岗位
	err := svc.Apply(user.ID, item.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyApplied)

	apps, err := svc.ListApplications(user.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestApplyUnknownInternship(t *testing.T) {
	svc, db := newInternshipFixtures(t)
	user := createTestUser(t, db, "learner@test.io")

	err := svc.Apply(user.ID, 999)
	assert.ErrorIs(t, err, util.ErrInternshipNotFound)
}

func TestSaveUnsaveIdempotent(t *testing.T) {
	svc, db := newInternshipFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	item := createTestInternship(t, db, "Backend Intern")

	require.NoError(t, svc.SaveForUser(user.ID, item.ID))
	// 重复收藏不报错也不产生第二行
	require.NoError(t, svc.SaveForUser(user.ID, item.ID))

	saved, err := svc.ListSaved(user.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, item.ID, saved[0].ID)

	require.NoError(t, svc.UnsaveForUser(user.ID, item.ID))
	saved, err = svc.ListSaved(user.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestListFilters(t *testing.T) {
	svc, db := newInternshipFixtures(t)
	createTestInternship(t, db, "Remote Intern")
	onsite := &model.Internship{Title: "Onsite Intern", Company: "Acme", Mode: "onsite", Location: "Bengaluru"}
	require.NoError(t, db.Create(onsite).Error)

	items, total, err := svc.List(1, 10, "onsite", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Onsite Intern", items[0].Title)

	_, total, err = svc.List(1, 10, "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
