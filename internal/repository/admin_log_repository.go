package repository

import (
	"corpready_backend/internal/model"

	"gorm.io/gorm"
)

type AdminLogRepository struct {
	DB *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) *AdminLogRepository {
	return &AdminLogRepository{DB: db}
}

// Append 审计日志只追加，没有更新和删除入口
func (r *AdminLogRepository) Append(entry *model.AdminActionLog) error {
	return r.DB.Create(entry).Error
}

func (r *AdminLogRepository) List(page, limit int, adminID uint) ([]model.AdminActionLog, int64, error) {
	var entries []model.AdminActionLog
	var total int64

	query := r.DB.Model(&model.AdminActionLog{})
	if adminID > 0 {
		query = query.Where("admin_id = ?", adminID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}
