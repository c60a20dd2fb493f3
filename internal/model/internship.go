package model

import "time"

type InternshipSource string

const (
	InternshipSourceExternal InternshipSource = "external"
	InternshipSourceAdmin    InternshipSource = "admin"
)

// swagger:model Internship
type Internship struct {
	BaseModel
	Title    string           `gorm:"size:255;not null" json:"title"`
	Company  string           `gorm:"size:100;not null" json:"company"`
	Location string           `gorm:"size:100" json:"location"`
	Mode     string           `gorm:"size:20" json:"mode"` // remote / onsite / hybrid
	Stipend  string           `gorm:"size:50" json:"stipend"`
	ApplyURL string           `gorm:"size:512" json:"applyUrl"`
	Source   InternshipSource `gorm:"size:20;default:'admin'" json:"source"`
	Deadline *time.Time       `json:"deadline"`
}

func (Internship) TableName() string {
	return "internships"
}

type SavedInternship struct {
	BaseModel
	UserID       uint `gorm:"uniqueIndex:idx_saved_user_internship;not null" json:"userId"`
	InternshipID uint `gorm:"uniqueIndex:idx_saved_user_internship;not null" json:"internshipId"`
}

func (SavedInternship) TableName() string {
	return "saved_internships"
}

type InternshipApplication struct {
	BaseModel
	UserID       uint      `gorm:"uniqueIndex:idx_applied_user_internship;not null" json:"userId"`
	InternshipID uint      `gorm:"uniqueIndex:idx_applied_user_internship;not null" json:"internshipId"`
	AppliedAt    time.Time `json:"appliedAt"`
}

func (InternshipApplication) TableName() string {
	return "internship_applications"
}
