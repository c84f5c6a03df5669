package model

import (
	"time"
)

type UserRole string

const (
	Trainee UserRole = "trainee"
	Coach   UserRole = "coach"
)

// swagger:model User
type User struct {
	BaseModel
	Email     string   `gorm:"size:100;unique;not null" json:"email"`
	FirstName string   `gorm:"size:50;not null" json:"firstName"`
	LastName  string   `gorm:"size:50;not null" json:"lastName"`
	Role      UserRole `gorm:"size:20;default:'trainee'" json:"role"`
	Avatar    string   `gorm:"size:255" json:"avatar"`
	Disabled  bool     `gorm:"default:false" json:"disabled"`

	// 学徒被分配给一位教练；教练本身的 AssignedCoachID 为空
	AssignedCoachID *uint `gorm:"index" json:"assignedCoachId"`
	AssignedCoach   *User `gorm:"foreignKey:AssignedCoachID" json:"-"`

	// 学徒所属的教育条例，决定其可见的行动能力
	EducationOrdinanceID *uint               `gorm:"index" json:"educationOrdinanceId"`
	EducationOrdinance   *EducationOrdinance `gorm:"foreignKey:EducationOrdinanceID" json:"educationOrdinance,omitempty"`

	LastSeen time.Time `gorm:"autoCreateTime" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// FullName 返回用户的完整姓名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsCoach() bool {
	return u.Role == Coach
}
