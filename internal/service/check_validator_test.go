package service

import (
	"athena_backend/internal/model"
	"athena_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func check(id uint, stage, semester int, approved bool) model.LearnAimCheck {
	return model.LearnAimCheck{
		ID:         id,
		TraineeID:  1,
		LearnAimID: 1,
		Stage:      stage,
		Semester:   semester,
		IsApproved: approved,
	}
}

func TestValidateCreate(t *testing.T) {
	v := NewCheckValidator(false)

	tests := []struct {
		name     string
		siblings []model.LearnAimCheck
		proposed model.LearnAimCheck
		wantErr  error
	}{
		{
			name:     "第一条勾选从第 1 阶段开始",
			siblings: nil,
			proposed: check(0, 1, 1, false),
			wantErr:  nil,
		},
		{
			name:     "第一条勾选不能跳到第 2 阶段",
			siblings: nil,
			proposed: check(0, 2, 1, false),
			wantErr:  util.ErrStageMustStartAtOne,
		},
		{
			name:     "第一条勾选不能跳到第 3 阶段",
			siblings: nil,
			proposed: check(0, 3, 1, false),
			wantErr:  util.ErrStageMustStartAtOne,
		},
		{
			name:     "前一阶段未审批时不能开启下一阶段",
			siblings: []model.LearnAimCheck{check(1, 1, 1, false)},
			proposed: check(0, 2, 1, false),
			wantErr:  util.ErrPriorStageNotApproved,
		},
		{
			name:     "前一阶段已审批后可开启下一阶段",
			siblings: []model.LearnAimCheck{check(1, 1, 1, true)},
			proposed: check(0, 2, 1, false),
			wantErr:  nil,
		},
		{
			name:     "同一阶段不能重复勾选",
			siblings: []model.LearnAimCheck{check(1, 1, 1, true)},
			proposed: check(0, 1, 2, false),
			wantErr:  util.ErrStageAlreadyChecked,
		},
		{
			name:     "学期不能早于已有勾选",
			siblings: []model.LearnAimCheck{check(1, 1, 3, true)},
			proposed: check(0, 2, 2, false),
			wantErr:  util.ErrSemesterRegression,
		},
		{
			name:     "同一学期的后续阶段允许",
			siblings: []model.LearnAimCheck{check(1, 1, 3, true)},
			proposed: check(0, 2, 3, false),
			wantErr:  nil,
		},
		{
			name: "阶段 3 需要 1、2 都已审批",
			siblings: []model.LearnAimCheck{
				check(1, 1, 1, true),
				check(2, 2, 2, false),
			},
			proposed: check(0, 3, 3, false),
			wantErr:  util.ErrPriorStageNotApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.siblings, &tt.proposed, ValidateCreate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// 兄弟勾选按阶段升序比对，报错顺序与输入顺序无关
func TestValidateDeterministicOrder(t *testing.T) {
	v := NewCheckValidator(false)

	// 阶段 2 未审批（触发前置未审批）且阶段 3 与拟提交相同（触发重复阶段），
	// 无论切片顺序如何，先报较低阶段的错误
	shuffled := []model.LearnAimCheck{
		check(3, 3, 3, false),
		check(2, 2, 2, false),
		check(1, 1, 1, true),
	}
	proposed := check(0, 3, 3, false)

	err := v.Validate(shuffled, &proposed, ValidateCreate)
	assert.ErrorIs(t, err, util.ErrPriorStageNotApproved)
}

func TestValidateUpdateExcludesSelf(t *testing.T) {
	v := NewCheckValidator(false)

	// 被编辑的记录本身不参与校验，阶段 1 的唯一勾选可以原地修改
	siblings := []model.LearnAimCheck{check(7, 1, 2, false)}
	proposed := check(7, 1, 3, false)
	assert.NoError(t, v.Validate(siblings, &proposed, ValidateUpdate))

	// 排除自己后没有其他勾选，阶段仍须从 1 开始
	proposed = check(7, 2, 3, false)
	assert.ErrorIs(t, v.Validate(siblings, &proposed, ValidateUpdate), util.ErrStageMustStartAtOne)
}

func TestValidateUpdateLenient(t *testing.T) {
	v := NewCheckValidator(false)

	// 默认模式下更新不重查阶段前置与重复阶段
	siblings := []model.LearnAimCheck{
		check(1, 1, 2, false),
		check(2, 2, 2, false),
	}
	proposed := check(2, 2, 2, false)
	assert.NoError(t, v.Validate(siblings, &proposed, ValidateUpdate))

	// 学期回退始终被拒绝
	proposed = check(2, 2, 1, false)
	assert.ErrorIs(t, v.Validate(siblings, &proposed, ValidateUpdate), util.ErrSemesterRegression)
}

func TestValidateUpdateStrict(t *testing.T) {
	v := NewCheckValidator(true)

	// 严格模式下更新同样执行阶段前置校验
	siblings := []model.LearnAimCheck{
		check(1, 1, 1, false),
		check(2, 2, 2, false),
	}
	proposed := check(2, 3, 3, false)
	assert.ErrorIs(t, v.Validate(siblings, &proposed, ValidateUpdate), util.ErrPriorStageNotApproved)

	// 改到已被其他记录占用的阶段被拒绝
	proposed = check(2, 1, 2, false)
	assert.ErrorIs(t, v.Validate(siblings, &proposed, ValidateUpdate), util.ErrStageAlreadyChecked)
}

func TestSetStrictUpdate(t *testing.T) {
	v := NewCheckValidator(false)
	siblings := []model.LearnAimCheck{
		check(1, 1, 1, false),
		check(2, 2, 2, false),
	}
	proposed := check(2, 3, 3, false)

	assert.NoError(t, v.Validate(siblings, &proposed, ValidateUpdate))

	v.SetStrictUpdate(true)
	assert.ErrorIs(t, v.Validate(siblings, &proposed, ValidateUpdate), util.ErrPriorStageNotApproved)
}
