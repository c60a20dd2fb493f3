package model

import "time"

// Certificate 每个 (用户, 课程) 至多一张。
// 唯一索引兜底并发双发：插入冲突视为已签发，不算错误。
type Certificate struct {
	BaseModel
	UserID          uint      `gorm:"uniqueIndex:idx_cert_user_course;not null" json:"userId"`
	CourseID        uint      `gorm:"uniqueIndex:idx_cert_user_course;not null" json:"courseId"`
	CourseName      string    `gorm:"size:255;not null" json:"courseName"`
	CertificateCode string    `gorm:"size:40;uniqueIndex;not null" json:"certificateCode"`
	IssuedAt        time.Time `json:"issuedAt"`
	PDFPath         string    `gorm:"size:255" json:"-"` // 渲染结果的磁盘缓存
}

func (Certificate) TableName() string {
	return "certificates"
}
