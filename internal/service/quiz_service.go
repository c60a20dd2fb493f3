package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"corpready_backend/pkg/logger"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	CourseRepo  *repository.CourseRepository
	UserRepo    *repository.UserRepository
	CertService *CertificateService
	Mailer      Mailer
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	certService *CertificateService,
	mailer Mailer,
) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		CourseRepo:  courseRepo,
		UserRepo:    userRepo,
		CertService: certService,
		Mailer:      mailer,
	}
}

// GetCourseQuiz 取出课程测验，题目不带正确答案（json 侧已屏蔽 CorrectAnswer）
func (s *QuizService) GetCourseQuiz(courseID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByCourseID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

type SubmitQuizRequest struct {
	Answers map[uint]int `json:"answers" binding:"required"` // questionID -> 选项下标
}

type QuizResult struct {
	AttemptID    uint               `json:"attemptId"`
	Score        int                `json:"score"`
	Passed       bool               `json:"passed"`
	PassingScore int                `json:"passingScore"`
	Total        int                `json:"total"`
	Correct      int                `json:"correct"`
	Certificate  *model.Certificate `json:"certificate,omitempty"`
}

// SubmitQuiz 判分并留存一次尝试快照。通过即触发幂等证书签发，
// 已经靠看完视频拿到证书的学员不会重复发证。
func (s *QuizService) SubmitQuiz(userID, quizID uint, req SubmitQuizRequest) (*QuizResult, error) {
	if len(req.Answers) == 0 {
		return nil, util.ErrEmptyAnswers
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	total := len(quiz.Questions)
	correct := 0
	for _, q := range quiz.Questions {
		if answer, ok := req.Answers[q.ID]; ok && answer == q.CorrectAnswer {
			correct++
		}
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	passed := score >= quiz.PassingScore

	attempt := &model.QuizAttempt{
		UserID:      userID,
		QuizID:      quizID,
		Answers:     req.Answers,
		Score:       score,
		Passed:      passed,
		SubmittedAt: time.Now(),
	}
	if err := s.QuizRepo.SaveAttempt(attempt); err != nil {
		return nil, err
	}

	result := &QuizResult{
		AttemptID:    attempt.ID,
		Score:        score,
		Passed:       passed,
		PassingScore: quiz.PassingScore,
		Total:        total,
		Correct:      correct,
	}

	if passed {
		course, err := s.CourseRepo.FindByID(quiz.CourseID)
		if err != nil {
			logger.Log.Error("failed to load course for quiz certificate",
				zap.Uint("courseId", quiz.CourseID), zap.Error(err))
			return result, nil
		}
		cert, created, err := s.CertService.EnsureIssued(userID, quiz.CourseID, course.Title)
		if err != nil {
			logger.Log.Error("failed to issue certificate after quiz pass",
				zap.Uint("userId", userID), zap.Uint("courseId", quiz.CourseID), zap.Error(err))
			return result, nil
		}
		result.Certificate = cert
		if created {
			go s.notifyCertificate(userID, cert)
		}
	}

	return result, nil
}

func (s *QuizService) notifyCertificate(userID uint, cert *model.Certificate) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("certificate notification panicked", zap.Any("panic", r))
		}
	}()
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		logger.Log.Error("failed to load user for certificate email",
			zap.Uint("userId", userID), zap.Error(err))
		return
	}
	if err := s.Mailer.SendCertificateReady(user, cert); err != nil {
		logger.Log.Warn("failed to send certificate email",
			zap.String("email", user.Email), zap.Error(err))
	}
}

func (s *QuizService) ListAttempts(userID, quizID uint) ([]model.QuizAttempt, error) {
	return s.QuizRepo.ListAttempts(userID, quizID)
}
