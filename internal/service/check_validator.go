package service

import (
	"athena_backend/internal/model"
	"athena_backend/internal/util"
	"sort"
)

// ValidationMode 区分新建与更新两种校验
type ValidationMode int

const (
	ValidateCreate ValidationMode = iota
	ValidateUpdate
)

// CheckValidator 勾选进阶规则的纯判定器：给定同一 (学徒, 学习目标) 线上的
// 既有勾选与一条拟写入的勾选，返回 nil 或具体的拒绝原因。不做任何 I/O。
//
// 历史行为：更新时只复核学期回退，不重查阶段前置与重复阶段。
// StrictUpdate 打开后更新也执行全部规则。
type CheckValidator struct {
	StrictUpdate bool
}

func NewCheckValidator(strictUpdate bool) *CheckValidator {
	return &CheckValidator{StrictUpdate: strictUpdate}
}

// SetStrictUpdate 供配置热加载在运行期切换严格模式
func (v *CheckValidator) SetStrictUpdate(strict bool) {
	v.StrictUpdate = strict
}

// Validate 按阶段升序逐条比对兄弟勾选，返回遇到的第一个拒绝原因。
// 升序遍历让报错顺序与数据无关，测试依赖这一点。
func (v *CheckValidator) Validate(siblings []model.LearnAimCheck, proposed *model.LearnAimCheck, mode ValidationMode) error {
	// 更新时按标识排除被编辑的记录本身
	others := make([]model.LearnAimCheck, 0, len(siblings))
	for _, s := range siblings {
		if mode == ValidateUpdate && s.ID == proposed.ID {
			continue
		}
		others = append(others, s)
	}

	sort.SliceStable(others, func(i, j int) bool {
		return others[i].Stage < others[j].Stage
	})

	// 第一条勾选必须从第 1 阶段开始
	if len(others) == 0 && proposed.Stage != model.MinStage {
		return util.ErrStageMustStartAtOne
	}

	fullCheck := mode == ValidateCreate || v.StrictUpdate

	for _, s := range others {
		if fullCheck {
			// 更早的阶段还未审批时不能开启更晚的阶段
			if s.Stage < proposed.Stage && !s.IsApproved {
				return util.ErrPriorStageNotApproved
			}
			// 同一阶段至多一条勾选
			if s.Stage == proposed.Stage {
				return util.ErrStageAlreadyChecked
			}
		}
		// 学期不能早于任何兄弟勾选
		if proposed.Semester < s.Semester {
			return util.ErrSemesterRegression
		}
	}

	return nil
}
