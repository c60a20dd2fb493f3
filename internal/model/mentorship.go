package model

import "time"

type MentorSessionStatus string

const (
	SessionBooked    MentorSessionStatus = "booked"
	SessionCompleted MentorSessionStatus = "completed"
	SessionCancelled MentorSessionStatus = "cancelled"
)

type Mentor struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	Title     string `gorm:"size:100" json:"title"`
	Company   string `gorm:"size:100" json:"company"`
	Expertise string `gorm:"size:255" json:"expertise"`
	Avatar    string `gorm:"size:255" json:"avatar"`
}

func (Mentor) TableName() string {
	return "mentors"
}

type MentorSession struct {
	BaseModel
	UserID      uint                `gorm:"index;not null" json:"userId"`
	MentorID    uint                `gorm:"index;not null" json:"mentorId"`
	Topic       string              `gorm:"size:255" json:"topic"`
	ScheduledAt time.Time           `json:"scheduledAt"`
	MeetLink    string              `gorm:"size:512" json:"meetLink"`
	Status      MentorSessionStatus `gorm:"size:20;default:'booked'" json:"status"`
}

func (MentorSession) TableName() string {
	return "mentor_sessions"
}
