package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"corpready_backend/pkg/logger"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
	UserRepo     *repository.UserRepository
	CertService  *CertificateService
	Mailer       Mailer

	// 测试钩子：置为 nil 时完课检查同步执行
	asyncCheck bool
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
	certService *CertificateService,
	mailer Mailer,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
		UserRepo:     userRepo,
		CertService:  certService,
		Mailer:       mailer,
		asyncCheck:   true,
	}
}

type UpdateVideoProgressRequest struct {
	VideoID         uint `json:"videoId" binding:"required"`
	WatchedDuration int  `json:"watchedDuration" binding:"min=0"`
	IsCompleted     bool `json:"isCompleted"`
}

// UpdateVideoProgress 记录播放进度。写入总是成功返回，完课判定
// 和证书签发在后台进行，任何失败只记日志不影响本次响应。
func (s *ProgressService) UpdateVideoProgress(userID uint, req UpdateVideoProgressRequest) (*model.VideoProgress, error) {
	courseID, err := s.CourseRepo.FindCourseIDByVideoID(req.VideoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrVideoNotFound
		}
		return nil, err
	}

	progress := &model.VideoProgress{
		UserID:          userID,
		VideoID:         req.VideoID,
		WatchedDuration: req.WatchedDuration,
		IsCompleted:     req.IsCompleted,
		LastWatchedAt:   time.Now(),
	}
	if err := s.ProgressRepo.UpsertVideoProgress(progress); err != nil {
		return nil, err
	}

	if err := s.ProgressRepo.TouchLastAccessed(userID, courseID); err != nil {
		logger.Log.Warn("failed to touch course last accessed",
			zap.Uint("userId", userID), zap.Uint("courseId", courseID), zap.Error(err))
	}

	if req.IsCompleted {
		if s.asyncCheck {
			go s.checkCourseCompletion(userID, courseID)
		} else {
			s.checkCourseCompletion(userID, courseID)
		}
	}

	return progress, nil
}

// checkCourseCompletion 统计课程内已完成视频数，全部完成则签发证书、
// 盖完课时间戳并发通知邮件。重复上报会再次走到这里，靠幂等签发收敛。
func (s *ProgressService) checkCourseCompletion(userID, courseID uint) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("course completion check panicked",
				zap.Uint("userId", userID), zap.Uint("courseId", courseID), zap.Any("panic", r))
		}
	}()

	videoIDs, err := s.CourseRepo.VideoIDsByCourseID(courseID)
	if err != nil {
		logger.Log.Error("failed to list course videos",
			zap.Uint("courseId", courseID), zap.Error(err))
		return
	}

	completed, err := s.ProgressRepo.CountCompletedVideos(userID, videoIDs)
	if err != nil {
		logger.Log.Error("failed to count completed videos",
			zap.Uint("userId", userID), zap.Uint("courseId", courseID), zap.Error(err))
		return
	}
	if completed != int64(len(videoIDs)) {
		return
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		logger.Log.Error("failed to load course for certificate",
			zap.Uint("courseId", courseID), zap.Error(err))
		return
	}

	cert, created, err := s.CertService.EnsureIssued(userID, courseID, course.Title)
	if err != nil {
		logger.Log.Error("failed to issue certificate",
			zap.Uint("userId", userID), zap.Uint("courseId", courseID), zap.Error(err))
		return
	}

	if err := s.ProgressRepo.MarkCourseCompleted(userID, courseID, time.Now()); err != nil {
		logger.Log.Error("failed to mark course completed",
			zap.Uint("userId", userID), zap.Uint("courseId", courseID), zap.Error(err))
	}

	if !created {
		return
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		logger.Log.Error("failed to load user for completion email",
			zap.Uint("userId", userID), zap.Error(err))
		return
	}
	if err := s.Mailer.SendCourseCompletion(user, course.Title); err != nil {
		logger.Log.Warn("failed to send course completion email",
			zap.String("email", user.Email), zap.Error(err))
	}
	if err := s.Mailer.SendCertificateReady(user, cert); err != nil {
		logger.Log.Warn("failed to send certificate email",
			zap.String("email", user.Email), zap.Error(err))
	}
}

// Enroll 幂等报名，重复调用返回已有记录
func (s *ProgressService) Enroll(userID, courseID uint) (*model.CourseProgress, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.ProgressRepo.Enroll(userID, courseID)
}

type CourseProgressSummary struct {
	CourseID        uint                  `json:"courseId"`
	TotalVideos     int                   `json:"totalVideos"`
	CompletedVideos int                   `json:"completedVideos"`
	Percent         float64               `json:"percent"`
	EnrolledAt      time.Time             `json:"enrolledAt"`
	LastAccessedAt  time.Time             `json:"lastAccessedAt"`
	CompletedAt     *time.Time            `json:"completedAt"`
	Videos          []model.VideoProgress `json:"videos"`
}

// GetCourseProgress 汇总单个课程的学习进度
func (s *ProgressService) GetCourseProgress(userID, courseID uint) (*CourseProgressSummary, error) {
	cp, err := s.ProgressRepo.FindCourseProgress(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	videoIDs, err := s.CourseRepo.VideoIDsByCourseID(courseID)
	if err != nil {
		return nil, err
	}
	videos, err := s.ProgressRepo.ListVideoProgress(userID, videoIDs)
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, v := range videos {
		if v.IsCompleted {
			completed++
		}
	}

	summary := &CourseProgressSummary{
		CourseID:        courseID,
		TotalVideos:     len(videoIDs),
		CompletedVideos: completed,
		EnrolledAt:      cp.EnrolledAt,
		LastAccessedAt:  cp.LastAccessedAt,
		CompletedAt:     cp.CompletedAt,
		Videos:          videos,
	}
	if len(videoIDs) > 0 {
		summary.Percent = float64(completed) / float64(len(videoIDs)) * 100
	}
	return summary, nil
}

func (s *ProgressService) ListEnrollments(userID uint) ([]model.CourseProgress, error) {
	return s.ProgressRepo.ListCourseProgress(userID)
}
