package repository

import (
	"corpready_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type InternshipRepository struct {
	DB *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) *InternshipRepository {
	return &InternshipRepository{DB: db}
}

func (r *InternshipRepository) List(page, limit int, mode, location string) ([]model.Internship, int64, error) {
	var items []model.Internship
	var total int64

	query := r.DB.Model(&model.Internship{})
	if mode != "" {
		query = query.Where("mode = ?", mode)
	}
	if location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *InternshipRepository) FindByID(id uint) (*model.Internship, error) {
	var item model.Internship
	err := r.DB.First(&item, id).Error
	return &item, err
}

func (r *InternshipRepository) Create(item *model.Internship) error {
	return r.DB.Create(item).Error
}

func (r *InternshipRepository) Update(item *model.Internship) error {
	return r.DB.Save(item).Error
}

func (r *InternshipRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Internship{}, id).Error
}

func (r *InternshipRepository) Save(userID, internshipID uint) error {
	var saved model.SavedInternship
	return r.DB.Where("user_id = ? AND internship_id = ?", userID, internshipID).
		FirstOrCreate(&saved, model.SavedInternship{UserID: userID, InternshipID: internshipID}).Error
}

func (r *InternshipRepository) Unsave(userID, internshipID uint) error {
	return r.DB.Where("user_id = ? AND internship_id = ?", userID, internshipID).
		Delete(&model.SavedInternship{}).Error
}

// Apply 依赖 (user_id, internship_id) 唯一索引，重复申请由调用方转 409
func (r *InternshipRepository) Apply(userID, internshipID uint) error {
	return r.DB.Create(&model.InternshipApplication{
		UserID:       userID,
		InternshipID: internshipID,
		AppliedAt:    time.Now(),
	}).Error
}

func (r *InternshipRepository) ListSaved(userID uint) ([]model.Internship, error) {
	var items []model.Internship
	err := r.DB.Model(&model.Internship{}).
		Joins("JOIN saved_internships ON saved_internships.internship_id = internships.id").
		Where("saved_internships.user_id = ? AND saved_internships.deleted_at IS NULL", userID).
		Find(&items).Error
	return items, err
}

func (r *InternshipRepository) ListApplications(userID uint) ([]model.InternshipApplication, error) {
	var apps []model.InternshipApplication
	err := r.DB.Where("user_id = ?", userID).Order("applied_at DESC").Find(&apps).Error
	return apps, err
}
