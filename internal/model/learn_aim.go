package model

// 学习目标的分类学层级（布卢姆分类法）
const (
	MinTaxonomyLevel = 1
	MaxTaxonomyLevel = 6
)

// LearnAim 学习目标，行动能力下的单个可考核技能
type LearnAim struct {
	BaseModel
	ActionCompetenceID uint              `gorm:"index;not null" json:"actionCompetenceId"`
	ActionCompetence   *ActionCompetence `gorm:"foreignKey:ActionCompetenceID" json:"-"`

	Identification string `gorm:"size:10;not null" json:"identification"`
	Description    string `gorm:"size:254;not null" json:"description"`
	TaxonomyLevel  int    `gorm:"not null" json:"taxonomyLevel"`
	ExampleText    string `gorm:"size:254;not null" json:"exampleText"`

	Tags []Tag `gorm:"many2many:learn_aim_tags" json:"tags"`

	// 学徒可把学习目标标记为待办
	MarkedAsTodo []User `gorm:"many2many:learn_aim_todos" json:"-"`
}

func (LearnAim) TableName() string {
	return "learn_aims"
}

// Name 返回行动能力编号加学习目标编号，例如 "A1 - 1.1"
func (l *LearnAim) Name() string {
	if l.ActionCompetence == nil {
		return l.Identification
	}
	return l.ActionCompetence.Identification + " - " + l.Identification
}
