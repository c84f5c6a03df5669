package model

// ActionCompetence 行动能力，例如 A1、A2；由一组有序的学习目标构成
type ActionCompetence struct {
	BaseModel
	Identification string `gorm:"size:5;not null" json:"identification"`
	Title          string `gorm:"size:50;not null" json:"title"`
	Description    string `gorm:"size:500;not null" json:"description"`

	// 对应的职业学校/跨企业课程模块，仅作展示
	AssociatedModulesVocationalSchool string `gorm:"size:254" json:"associatedModulesVocationalSchool"`
	AssociatedModulesOverboardCourse  string `gorm:"size:254" json:"associatedModulesOverboardCourse"`

	// 一个行动能力可以属于多个教育条例
	EducationOrdinances []EducationOrdinance `gorm:"many2many:action_competence_ordinances" json:"-"`
	LearnAims           []LearnAim           `gorm:"foreignKey:ActionCompetenceID" json:"learnAims,omitempty"`
}

func (ActionCompetence) TableName() string {
	return "action_competences"
}

// Name 返回编号与标题的组合，例如 "A1 - Create a database"
func (a *ActionCompetence) Name() string {
	return a.Identification + " - " + a.Title
}

// InOrdinance 判断行动能力是否属于给定的教育条例
func (a *ActionCompetence) InOrdinance(ordinanceID uint) bool {
	for _, o := range a.EducationOrdinances {
		if o.ID == ordinanceID {
			return true
		}
	}
	return false
}
