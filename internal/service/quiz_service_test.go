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

func newQuizFixtures(t *testing.T) (*QuizService, *recordingMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig(t)
	mailer := &recordingMailer{}

	certService := NewCertificateService(
		repository.NewCertificateRepository(db),
		repository.NewUserRepository(db),
		cfg,
	)
	quizService := NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
		certService,
		mailer,
	)
	return quizService, mailer, db
}

// createTestQuiz 建一个 3 题、及格线 60 的测验，正确答案都是下标 0
func createTestQuiz(t *testing.T, db *gorm.DB, courseID uint) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{CourseID: courseID, Title: "Final Quiz", PassingScore: 60}
	require.NoError(t, db.Create(quiz).Error)
	for i := 0; i < 3; i++ {
		q := &model.QuizQuestion{
			QuizID:        quiz.ID,
			Text:          "question",
			Options:       []string{"right", "wrong", "wrong"},
			CorrectAnswer: 0,
			Order:         i + 1,
		}
		require.NoError(t, db.Create(q).Error)
	}
	return quiz
}

func quizQuestionIDs(t *testing.T, db *gorm.DB, quizID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quizID).Order("`order`").Pluck("id", &ids).Error)
	return ids
}

func TestSubmitQuizScoreAtThresholdPasses(t *testing.T) {
	svc, _, db := newQuizFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 1)

	// 5 题对 3 题正好踩在及格线 60 上
	quiz := &model.Quiz{CourseID: course.ID, Title: "Final Quiz", PassingScore: 60}
	require.NoError(t, db.Create(quiz).Error)
	for i := 0; i < 5; i++ {
		q := &model.QuizQuestion{
			QuizID:        quiz.ID,
			Text:          "question",
			Options:       []string{"right", "wrong", "wrong"},
			CorrectAnswer: 0,
			Order:         i + 1,
		}
		require.NoError(t, db.Create(q).Error)
	}
	ids := quizQuestionIDs(t, db, quiz.ID)

	result, err := svc.SubmitQuiz(user.ID, quiz.ID, SubmitQuizRequest{
		Answers: map[uint]int{ids[0]: 0, ids[1]: 0, ids[2]: 0, ids[3]: 1, ids[4]: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 60, result.Score)
	assert.True(t, result.Passed)
	require.NotNil(t, result.Certificate)
}

func TestSubmitQuizEmptyAnswers(t *testing.T) {
	svc, _, db := newQuizFixtures(t)
	user := createTestUser(t, db, "learner@test.io")

	_, err := svc.SubmitQuiz(user.ID, 1, SubmitQuizRequest{Answers: map[uint]int{}})
	assert.ErrorIs(t, err, util.ErrEmptyAnswers)
}

func TestSubmitQuizScoreRounding(t *testing.T) {
	svc, _, db := newQuizFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 1)
	quiz := createTestQuiz(t, db, course.ID)
	ids := quizQuestionIDs(t, db, quiz.ID)

	// 3 题对 2 题：66.67 四舍五入为 67，过线
	result, err := svc.SubmitQuiz(user.ID, quiz.ID, SubmitQuizRequest{
		Answers: map[uint]int{ids[0]: 0, ids[1]: 0, ids[2]: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 67, result.Score)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 3, result.Total)
	assert.True(t, result.Passed)
	assert.NotNil(t, result.Certificate)
}

func TestSubmitQuizFailBelowThreshold(t *testing.T) {
	svc, _, db := newQuizFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 1)
	quiz := createTestQuiz(t, db, course.ID)
	ids := quizQuestionIDs(t, db, quiz.ID)

	// 3 题对 1 题：33 分不过线，不发证
	result, err := svc.SubmitQuiz(user.ID, quiz.ID, SubmitQuizRequest{
		Answers: map[uint]int{ids[0]: 0, ids[1]: 1, ids[2]: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 33, result.Score)
	assert.False(t, result.Passed)
	assert.Nil(t, result.Certificate)

	var certCount int64
	db.Model(&model.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.Zero(t, certCount)
}

func TestSubmitQuizUnansweredCountsWrong(t *testing.T) {
	svc, _, db := newQuizFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 1)
	quiz := createTestQuiz(t, db, course.ID)
	ids := quizQuestionIDs(t, db, quiz.ID)

	// 只答 1 题且答对，另外 2 题按答错计
	result, err := svc.SubmitQuiz(user.ID, quiz.ID, SubmitQuizRequest{
		Answers: map[uint]int{ids[0]: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 33, result.Score)
	assert.False(t, result.Passed)
}

func TestQuizPassDoesNotDuplicateCertificate(t *testing.T) {
	svc, _, db := newQuizFixtures(t)
	user := createTestUser(t, db, "learner@test.io")
	course := createTestCourse(t, db, "Go Basics", 1)
	quiz := createTestQuiz(t, db, course.ID)
	ids := quizQuestionIDs(t, db, quiz.ID)

	allCorrect := SubmitQuizRequest{Answers: map[uint]int{ids[0]: 0, ids[1]: 0, ids[2]: 0}}

	first, err := svc.SubmitQuiz(user.ID, quiz.ID, allCorrect)
	require.NoError(t, err)
	require.NotNil(t, first.Certificate)

	// 再次通过同一测验，收敛到同一张证书
	second, err := svc.SubmitQuiz(user.ID, quiz.ID, allCorrect)
	require.NoError(t, err)
	require.NotNil(t, second.Certificate)
	assert.Equal(t, first.Certificate.CertificateCode, second.Certificate.CertificateCode)

	var certCount int64
	db.Model(&model.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)

	// 两次尝试都留有快照
	attempts, err := svc.ListAttempts(user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestGetCourseQuizNotFound(t *testing.T) {
	svc, _, db := newQuizFixtures(t)
	course := createTestCourse(t, db, "Go Basics", 1)

	_, err := svc.GetCourseQuiz(course.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
