package repository

import (
	"corpready_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// UpsertVideoProgress (用户, 视频) 维度覆盖写，复合唯一索引兜底
func (r *ProgressRepository) UpsertVideoProgress(p *model.VideoProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"watched_duration", "is_completed", "last_watched_at", "updated_at",
		}),
	}).Create(p).Error
}

func (r *ProgressRepository) FindVideoProgress(userID, videoID uint) (*model.VideoProgress, error) {
	var p model.VideoProgress
	err := r.DB.Where("user_id = ? AND video_id = ?", userID, videoID).First(&p).Error
	return &p, err
}

func (r *ProgressRepository) CountCompletedVideos(userID uint, videoIDs []uint) (int64, error) {
	if len(videoIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.VideoProgress{}).
		Where("user_id = ? AND video_id IN ? AND is_completed = ?", userID, videoIDs, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) ListVideoProgress(userID uint, videoIDs []uint) ([]model.VideoProgress, error) {
	var rows []model.VideoProgress
	if len(videoIDs) == 0 {
		return rows, nil
	}
	err := r.DB.Where("user_id = ? AND video_id IN ?", userID, videoIDs).Find(&rows).Error
	return rows, err
}

// Enroll 已有记录则复用，重复报名无副作用。
// 时间字段只能走 Attrs，进查询条件会匹配不上旧行
func (r *ProgressRepository) Enroll(userID, courseID uint) (*model.CourseProgress, error) {
	var cp model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Attrs(model.CourseProgress{
			UserID:         userID,
			CourseID:       courseID,
			EnrolledAt:     time.Now(),
			LastAccessedAt: time.Now(),
		}).FirstOrCreate(&cp).Error
	return &cp, err
}

func (r *ProgressRepository) FindCourseProgress(userID, courseID uint) (*model.CourseProgress, error) {
	var cp model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error
	return &cp, err
}

func (r *ProgressRepository) ListCourseProgress(userID uint) ([]model.CourseProgress, error) {
	var rows []model.CourseProgress
	err := r.DB.Where("user_id = ?", userID).Order("last_accessed_at DESC").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) TouchLastAccessed(userID, courseID uint) error {
	return r.DB.Model(&model.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("last_accessed_at", time.Now()).
		Error
}

// MarkCourseCompleted 批量 update 所有匹配行，容忍历史脏数据里的重复行
// MarkCourseCompleted 只补未盖章的行，完成时间一经写入不再变动
func (r *ProgressRepository) MarkCourseCompleted(userID, courseID uint, completedAt time.Time) error {
	return r.DB.Model(&model.CourseProgress{}).
		Where("user_id = ? AND course_id = ? AND completed_at IS NULL", userID, courseID).
		Update("completed_at", completedAt).
		Error
}
