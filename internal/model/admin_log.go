package model

// AdminActionLog 特权操作的追加审计日志，只写不改
type AdminActionLog struct {
	BaseModel
	AdminID    uint   `gorm:"index;not null" json:"adminId"`
	Action     string `gorm:"size:50;not null" json:"action"`
	TargetType string `gorm:"size:50" json:"targetType"`
	TargetID   uint   `json:"targetId"`
	Detail     string `gorm:"type:text" json:"detail"`
}

func (AdminActionLog) TableName() string {
	return "admin_action_logs"
}
