package model

// Tag 学习目标的标签，例如 Database Design、SQL、Go
type Tag struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Tag) TableName() string {
	return "tags"
}
