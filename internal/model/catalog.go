package model

// Domain 学习领域，目录树的根节点
type Domain struct {
	BaseModel
	Name        string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Icon        string  `gorm:"size:255" json:"icon"`
	Topics      []Topic `gorm:"foreignKey:DomainID" json:"topics,omitempty"`
}

func (Domain) TableName() string {
	return "domains"
}

type Topic struct {
	BaseModel
	DomainID    uint     `gorm:"index;not null" json:"domainId"`
	Name        string   `gorm:"size:100;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Order       int      `gorm:"default:0" json:"order"`
	Courses     []Course `gorm:"foreignKey:TopicID" json:"courses,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}
