package model

import (
	"time"
)

type UserRole string

const (
	Learner UserRole = "learner"
	Admin   UserRole = "admin"
	Curator UserRole = "curator"
	Ops     UserRole = "ops"
	Partner UserRole = "partner"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'learner';index" json:"role"`
	Avatar   string   `gorm:"size:255" json:"avatar"`

	// 账号状态：停用为软删除，不做物理删除
	IsActive   bool `gorm:"default:true" json:"isActive"`
	IsVerified bool `gorm:"default:false" json:"isVerified"`

	// 邮箱验证与密码重置令牌
	VerifyToken       string     `gorm:"size:64;index" json:"-"`
	ResetToken        string     `gorm:"size:64;index" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	// 当前有效的刷新令牌，单会话失效
	RefreshToken string `gorm:"size:512" json:"-"`

	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
