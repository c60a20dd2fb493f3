package model

type CourseSource string

const (
	CourseSourceSeed      CourseSource = "seed"
	CourseSourceGenerated CourseSource = "generated"
	CourseSourceAdmin     CourseSource = "admin"
)

// swagger:model Course
type Course struct {
	BaseModel
	TopicID        uint           `gorm:"index" json:"topicId"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	EstimatedHours float64        `gorm:"default:0" json:"estimatedHours"`
	SkillLevel     string         `gorm:"size:50" json:"skillLevel"`
	TargetAudience string         `gorm:"size:255" json:"targetAudience"`
	Source         CourseSource   `gorm:"size:20;default:'seed'" json:"source"`
	Modules        []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseModule struct {
	BaseModel
	CourseID    uint    `gorm:"index;not null" json:"courseId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Order       int     `gorm:"default:0" json:"order"`
	Videos      []Video `gorm:"foreignKey:ModuleID" json:"videos,omitempty"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// Video 视频均来源于 YouTube，时长与播放量由 Data API 回填
type Video struct {
	BaseModel
	ModuleID        uint   `gorm:"index;not null" json:"moduleId"`
	YouTubeID       string `gorm:"size:20;index" json:"youtubeId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Thumbnail       string `gorm:"size:255" json:"thumbnail"`
	ChannelTitle    string `gorm:"size:100" json:"channelTitle"`
	DurationSeconds int    `gorm:"default:0" json:"durationSeconds"`
	Duration        string `gorm:"size:20" json:"duration"` // H:MM:SS 或 M:SS
	ViewCount       string `gorm:"size:20" json:"viewCount"`
	LikeCount       string `gorm:"size:20" json:"likeCount"`
	Order           int    `gorm:"default:0" json:"order"`
}

func (Video) TableName() string {
	return "videos"
}
