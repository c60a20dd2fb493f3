package repository

import (
	"corpready_backend/internal/model"

	"gorm.io/gorm"
)

type MentorshipRepository struct {
	DB *gorm.DB
}

func NewMentorshipRepository(db *gorm.DB) *MentorshipRepository {
	return &MentorshipRepository{DB: db}
}

func (r *MentorshipRepository) ListMentors() ([]model.Mentor, error) {
	var mentors []model.Mentor
	err := r.DB.Order("name ASC").Find(&mentors).Error
	return mentors, err
}

func (r *MentorshipRepository) FindMentorByID(id uint) (*model.Mentor, error) {
	var mentor model.Mentor
	err := r.DB.First(&mentor, id).Error
	return &mentor, err
}

func (r *MentorshipRepository) CreateSession(session *model.MentorSession) error {
	return r.DB.Create(session).Error
}

func (r *MentorshipRepository) FindSessionByID(id uint) (*model.MentorSession, error) {
	var session model.MentorSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *MentorshipRepository) UpdateSession(session *model.MentorSession) error {
	return r.DB.Save(session).Error
}

func (r *MentorshipRepository) ListSessionsByUser(userID uint) ([]model.MentorSession, error) {
	var sessions []model.MentorSession
	err := r.DB.Where("user_id = ?", userID).Order("scheduled_at DESC").Find(&sessions).Error
	return sessions, err
}
