package model

import "time"

// VideoProgress 每个 (用户, 视频) 至多一行，更新走 upsert
type VideoProgress struct {
	BaseModel
	UserID          uint      `gorm:"uniqueIndex:idx_user_video;not null" json:"userId"`
	VideoID         uint      `gorm:"uniqueIndex:idx_user_video;not null" json:"videoId"`
	WatchedDuration int       `gorm:"default:0" json:"watchedDuration"` // 秒
	IsCompleted     bool      `gorm:"default:false" json:"isCompleted"`
	LastWatchedAt   time.Time `json:"lastWatchedAt"`
}

func (VideoProgress) TableName() string {
	return "video_progress"
}

// CourseProgress 每个 (用户, 课程) 至多一行
type CourseProgress struct {
	BaseModel
	UserID         uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID       uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"courseId"`
	EnrolledAt     time.Time  `json:"enrolledAt"`
	LastAccessedAt time.Time  `json:"lastAccessedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
