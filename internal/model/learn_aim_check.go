package model

import "time"

// 完成阶段：1=了解，2=练习，3=掌握
const (
	MinStage = 1
	MaxStage = 3
)

// 学期范围，四年制学徒共 8 个学期
const (
	MinSemester = 1
	MaxSemester = 8
)

// CheckState 勾选记录的状态视图
type CheckState string

const (
	CheckPending  CheckState = "pending"
	CheckApproved CheckState = "approved"
)

// LearnAimCheck 学徒对某个学习目标某个阶段的勾选记录。
// (trainee, learn_aim, stage) 上的唯一索引保证同一阶段至多存在一条记录，
// 即使两次创建请求并发竞争也不会产生重复。
// 撤回/拒绝是物理删除而非软删除：软删除的行仍占用唯一索引，
// 会挡住同一阶段的重新提交。
type LearnAimCheck struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TraineeID uint  `gorm:"uniqueIndex:idx_check_trainee_aim_stage;not null" json:"traineeId"`
	Trainee   *User `gorm:"foreignKey:TraineeID" json:"-"`

	LearnAimID uint      `gorm:"uniqueIndex:idx_check_trainee_aim_stage;not null" json:"learnAimId"`
	LearnAim   *LearnAim `gorm:"foreignKey:LearnAimID" json:"learnAim,omitempty"`

	Stage    int    `gorm:"uniqueIndex:idx_check_trainee_aim_stage;not null" json:"stage"`
	Semester int    `gorm:"not null" json:"semester"`
	Comment  string `gorm:"size:254;not null" json:"comment"`

	// 审批状态与审批人总是在同一条 UPDATE 中写入，已审批的记录必然带有审批人
	IsApproved   bool  `gorm:"default:false;not null" json:"isApproved"`
	ApprovedByID *uint `json:"approvedById"`
	ApprovedBy   *User `gorm:"foreignKey:ApprovedByID" json:"approvedBy,omitempty"`
}

func (LearnAimCheck) TableName() string {
	return "learn_aim_checks"
}

// State 返回记录的状态：Pending 或 Approved
func (c *LearnAimCheck) State() CheckState {
	if c.IsApproved {
		return CheckApproved
	}
	return CheckPending
}
