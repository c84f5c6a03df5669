package model

// EducationOrdinance 教育条例（课程版本），例如 BiVo 14、BiVo 21
type EducationOrdinance struct {
	BaseModel
	Title string `gorm:"size:50;uniqueIndex;not null" json:"title"`
}

func (EducationOrdinance) TableName() string {
	return "education_ordinances"
}
