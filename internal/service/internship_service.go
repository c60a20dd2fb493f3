package service

import (
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type InternshipService struct {
	InternshipRepo *repository.InternshipRepository
}

func NewInternshipService(internshipRepo *repository.InternshipRepository) *InternshipService {
	return &InternshipService{InternshipRepo: internshipRepo}
}

func (s *InternshipService) List(page, limit int, mode, location string) ([]model.Internship, int64, error) {
	return s.InternshipRepo.List(page, limit, mode, location)
}

func (s *InternshipService) Get(id uint) (*model.Internship, error) {
	item, err := s.InternshipRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInternshipNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *InternshipService) Create(item *model.Internship) error {
	return s.InternshipRepo.Create(item)
}

func (s *InternshipService) Update(item *model.Internship) error {
	if _, err := s.Get(item.ID); err != nil {
		return err
	}
	return s.InternshipRepo.Update(item)
}

func (s *InternshipService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.InternshipRepo.Delete(id)
}

// SaveForUser 收藏是幂等的，重复收藏不报错
func (s *InternshipService) SaveForUser(userID, internshipID uint) error {
	if _, err := s.Get(internshipID); err != nil {
		return err
	}
	return s.InternshipRepo.Save(userID, internshipID)
}

func (s *InternshipService) UnsaveForUser(userID, internshipID uint) error {
	return s.InternshipRepo.Unsave(userID, internshipID)
}

// Apply 投递只记一次，重复投递返回 ErrAlreadyApplied
func (s *InternshipService) Apply(userID, internshipID uint) error {
	if _, err := s.Get(internshipID); err != nil {
		return err
	}
	if err := s.InternshipRepo.Apply(userID, internshipID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (s *InternshipService) ListSaved(userID uint) ([]model.Internship, error) {
	return s.InternshipRepo.ListSaved(userID)
}

func (s *InternshipService) ListApplications(userID uint) ([]model.InternshipApplication, error) {
	return s.InternshipRepo.ListApplications(userID)
}
