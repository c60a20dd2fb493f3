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

func newMentorshipFixtures(t *testing.T) (*MentorshipService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewMentorshipService(repository.NewMentorshipRepository(db))
	return svc, db
}

func createTestMentor(t *testing.T, db *gorm.DB) *model.Mentor {
	t.Helper()
	mentor := &model.Mentor{Name: "Mentor", Title: "Staff Engineer", Company: "Acme"}
	require.NoError(t, db.Create(mentor).Error)
	return mentor
}

func TestBookSession(t *testing.T) {
	svc, db := newMentorshipFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	mentor := createTestMentor(t, db)

	session, err := svc.BookSession(user.ID, BookSessionRequest{
		MentorID:    mentor.ID,
		Topic:       "Mock interview",
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SessionBooked, session.Status)
	assert.Contains(t, session.MeetLink, "meet.corpready.io")

	sessions, err := svc.ListSessions(user.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestBookSessionUnknownMentor(t *testing.T) {
	svc, db := newMentorshipFixtures(t)
	user := createTestUser(t, db, "learner@test.io")

	_, err := svc.BookSession(user.ID, BookSessionRequest{
		MentorID: 999, Topic: "x", ScheduledAt: time.Now(),
	})
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestCancelSessionOwnership(t *testing.T) {
	svc, db := newMentorshipFixtures(t)
	owner := createTestUser(t, db, "owner@test.io")
	other := createTestUser(t, db, "other@test.io")
	mentor := createTestMentor(t, db)

	session, err := svc.BookSession(owner.ID, BookSessionRequest{
		MentorID: mentor.ID, Topic: "x", ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// 别人的会话不能取消
	_, err = svc.CancelSession(other.ID, session.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	cancelled, err := svc.CancelSession(owner.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCancelled, cancelled.Status)
}

func TestCancelCompletedSession(t *testing.T) {
	svc, db := newMentorshipFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	mentor := createTestMentor(t, db)

	session, err := svc.BookSession(user.ID, BookSessionRequest{
		MentorID: mentor.ID, Topic: "x", ScheduledAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.MentorSession{}).Where("id = ?", session.ID).
		Update("status", model.SessionCompleted).Error)

	_, err = svc.CancelSession(user.ID, session.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
