package repository

import (
	"corpready_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("`course_modules`.`order` ASC")
		}).
		Preload("Modules.Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("`videos`.`order` ASC")
		}).
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) List(page, limit int, topicID uint) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{})
	if topicID > 0 {
		query = query.Where("topic_id = ?", topicID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

// CreateTree 整棵课程树（课程/模块/视频）一个事务写入
func (r *CourseRepository) CreateTree(course *model.Course) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(course).Error
	})
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) FindVideoByID(id uint) (*model.Video, error) {
	var video model.Video
	err := r.DB.First(&video, id).Error
	return &video, err
}

// FindCourseIDByVideoID 视频 -> 模块 -> 课程
func (r *CourseRepository) FindCourseIDByVideoID(videoID uint) (uint, error) {
	var courseID uint
	err := r.DB.Model(&model.Video{}).
		Select("course_modules.course_id").
		Joins("JOIN course_modules ON course_modules.id = videos.module_id").
		Where("videos.id = ?", videoID).
		Scan(&courseID).Error
	if err != nil {
		return 0, err
	}
	if courseID == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return courseID, nil
}

// VideoIDsByCourseID 枚举课程下所有模块的全部视频 id
func (r *CourseRepository) VideoIDsByCourseID(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Video{}).
		Select("videos.id").
		Joins("JOIN course_modules ON course_modules.id = videos.module_id").
		Where("course_modules.course_id = ?", courseID).
		Scan(&ids).Error
	return ids, err
}
