package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoIDsOf(t *testing.T, svc *ProgressService, courseID uint) []uint {
	t.Helper()
	ids, err := svc.CourseRepo.VideoIDsByCourseID(courseID)
	require.NoError(t, err)
	return ids
}

func TestUpdateVideoProgressUnknownVideo(t *testing.T) {
	svc, _, _, db := newProgressFixtures(t)
	user := createTestUser(t, db, "learner@test.io")

	_, err := svc.UpdateVideoProgress(user.ID, UpdateVideoProgressRequest{VideoID: 999, WatchedDuration: 10})
	assert.ErrorIs(t, err, util.ErrVideoNotFound)
}

func TestUpdateVideoProgressUpsert(t *testing.T) {
	svc, _, _, db := newProgressFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 2)
	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	ids := videoIDsOf(t, svc, course.ID)

	// 首次上报
	_, err = svc.UpdateVideoProgress(user.ID, UpdateVideoProgressRequest{
		VideoID: ids[0], WatchedDuration: 30,
	})
	require.NoError(t, err)

	// 同一视频再次上报只更新既有行
	_, err = svc.UpdateVideoProgress(user.ID, UpdateVideoProgressRequest{
		VideoID: ids[0], WatchedDuration: 95, IsCompleted: true,
	})
	require.NoError(t, err)

	var rows []model.VideoProgress
	require.NoError(t, db.Where("user_id = ? AND video_id = ?", user.ID, ids[0]).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 95, rows[0].WatchedDuration)
	assert.True(t, rows[0].IsCompleted)
}

func TestCourseCompletionIssuesCertificateOnce(t *testing.T) {
	svc, certService, mailer, db := newProgressFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 3)
	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	ids := videoIDsOf(t, svc, course.ID)

	// 前两个视频完成，课程尚未完课
	for _, id := range ids[:2] {
		_, err := svc.UpdateVideoProgress(user.ID, UpdateVideoProgressRequest{
			VideoID: id, WatchedDuration: 60, IsCompleted: true,
		})
		require.NoError(t, err)
	}
	var certCount int64
	db.Model(&model.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Zero(t, certCount)

	// 最后一个视频完成触发完课
	_, err = svc.UpdateVideoProgress(user.ID, UpdateVideoProgressRequest{
		VideoID: ids[2], WatchedDuration: 60, IsCompleted: true,
	})
	require.NoError(t, err)

	db.Model(&model.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)

	cert, err := certService.CertRepo.FindByUserAndCourse(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics", cert.CourseName)
	assert.NotEmpty(t, cert.CertificateCode)

	// 完课时间戳已盖上
	cp, err := svc.ProgressRepo.FindCourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, cp.CompletedAt)

	assert.Equal(t, 1, mailer.completionCount())
	assert.Equal(t, 1, mailer.certificateCount())

	// 重复上报最后一个视频不会再发证也不再发信
	firstStamp := *cp.CompletedAt
	time.Sleep(5 * time.Millisecond)
	_, err = svc.UpdateVideoProgress(user.ID, UpdateVideoProgressRequest{
		VideoID: ids[2], WatchedDuration: 61, IsCompleted: true,
	})
	require.NoError(t, err)

	db.Model(&model.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)
	assert.Equal(t, 1, mailer.completionCount())
	assert.Equal(t, 1, mailer.certificateCount())

	// 完成时间戳保持首次盖章的值
	cp, err = svc.ProgressRepo.FindCourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	require.NotNil(t, cp.CompletedAt)
	assert.True(t, cp.CompletedAt.Equal(firstStamp))
}

func TestMailerFailureDoesNotBlockProgress(t *testing.T) {
	svc, _, mailer, db := newProgressFixtures(t)
	mailer.failAll = true
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 1)

	ids := videoIDsOf(t, svc, course.ID)
	_, err := svc.UpdateVideoProgress(user.ID, UpdateVideoProgressRequest{
		VideoID: ids[0], WatchedDuration: 60, IsCompleted: true,
	})
	require.NoError(t, err)

	// 发信失败不影响证书落库
	var certCount int64
	db.Model(&model.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)
}

func TestZeroVideoCourseCompletesVacuously(t *testing.T) {
	svc, _, _, db := newProgressFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Empty Course", 0)
	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	// 没有视频的课程，完课检查 0 == 0 直接成立
	svc.checkCourseCompletion(user.ID, course.ID)

	var certCount int64
	db.Model(&model.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)
}

func TestEnrollIdempotent(t *testing.T) {
	svc, _, _, db := newProgressFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 1)

	first, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	second, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.WithinDuration(t, first.EnrolledAt, second.EnrolledAt, time.Second)

	var count int64
	db.Model(&model.CourseProgress{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetCourseProgressSummary(t *testing.T) {
	svc, _, _, db := newProgressFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 4)
	_, err := svc.Enroll(user.ID, course.ID)
	require.NoError(t, err)

	ids := videoIDsOf(t, svc, course.ID)
	_, err = svc.UpdateVideoProgress(user.ID, UpdateVideoProgressRequest{
		VideoID: ids[0], WatchedDuration: 60, IsCompleted: true,
	})
	require.NoError(t, err)

	summary, err := svc.GetCourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalVideos)
	assert.Equal(t, 1, summary.CompletedVideos)
	assert.InDelta(t, 25.0, summary.Percent, 0.01)
	assert.Nil(t, summary.CompletedAt)
}
