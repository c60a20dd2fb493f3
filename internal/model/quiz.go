package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	CourseID     uint           `gorm:"index;not null" json:"courseId"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	PassingScore int            `gorm:"default:60" json:"passingScore"` // 0-100
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	BaseModel
	QuizID        uint     `gorm:"index;not null" json:"quizId"`
	Text          string   `gorm:"type:text;not null" json:"text"`
	Options       []string `gorm:"serializer:json" json:"options"`
	CorrectAnswer int      `gorm:"not null" json:"-"` // 正确选项下标，不下发给学员
	Order         int      `gorm:"default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAttempt 快照一次提交的答案与得分
type QuizAttempt struct {
	BaseModel
	UserID      uint         `gorm:"index;not null" json:"userId"`
	QuizID      uint         `gorm:"index;not null" json:"quizId"`
	Answers     map[uint]int `gorm:"serializer:json" json:"answers"` // questionID -> 选项下标
	Score       int          `gorm:"not null" json:"score"`          // 0-100
	Passed      bool         `gorm:"default:false" json:"passed"`
	SubmittedAt time.Time    `json:"submittedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
