package model

// CompetenceProgress 某个学徒在某个行动能力上的完成度，按需汇总、不落库。
// Closed 统计的是存在已审批第 3 阶段勾选的学习目标数量。
// swagger:model CompetenceProgress
type CompetenceProgress struct {
	ActionCompetenceID uint   `json:"id"`
	Name               string `json:"name"`
	Closed             int64  `json:"closed"`
	Total              int64  `json:"total"`
}
