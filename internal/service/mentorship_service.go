package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentorshipService struct {
	MentorshipRepo *repository.MentorshipRepository
}

func NewMentorshipService(mentorshipRepo *repository.MentorshipRepository) *MentorshipService {
	return &MentorshipService{MentorshipRepo: mentorshipRepo}
}

func (s *MentorshipService) ListMentors() ([]model.Mentor, error) {
	return s.MentorshipRepo.ListMentors()
}

type BookSessionRequest struct {
	MentorID    uint      `json:"mentorId" binding:"required"`
	Topic       string    `json:"topic" binding:"required,max=255"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
}

// BookSession 预约时即生成会议链接，导师侧另有日历同步
func (s *MentorshipService) BookSession(userID uint, req BookSessionRequest) (*model.MentorSession, error) {
	if _, err := s.MentorshipRepo.FindMentorByID(req.MentorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	session := &model.MentorSession{
		UserID:      userID,
		MentorID:    req.MentorID,
		Topic:       req.Topic,
		ScheduledAt: req.ScheduledAt,
		MeetLink:    fmt.Sprintf("https://meet.corpready.io/%s", uuid.NewString()),
		Status:      model.SessionBooked,
	}
	if err := s.MentorshipRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *MentorshipService) ListSessions(userID uint) ([]model.MentorSession, error) {
	return s.MentorshipRepo.ListSessionsByUser(userID)
}

// CancelSession 只有本人能取消，已结束的会话不可取消
func (s *MentorshipService) CancelSession(userID, sessionID uint) (*model.MentorSession, error) {
	session, err := s.MentorshipRepo.FindSessionByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if session.Status == model.SessionCompleted {
		return nil, util.ErrPermissionDenied
	}
	session.Status = model.SessionCancelled
	if err := s.MentorshipRepo.UpdateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}
