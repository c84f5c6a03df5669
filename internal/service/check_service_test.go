package service

import (
	"athena_backend/internal/model"
	"athena_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFirstCheck(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	check := f.submit(t, svc, f.aim.ID, 1, 1)

	assert.Equal(t, model.CheckPending, check.State())
	assert.False(t, check.IsApproved)
	assert.Nil(t, check.ApprovedByID)
	assert.Equal(t, f.trainee.ID, check.TraineeID)
	require.NotNil(t, check.LearnAim)
	assert.Equal(t, f.aim.ID, check.LearnAim.ID)
}

func TestSubmitCannotSkipStageOne(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	_, err := svc.SubmitCheck(f.trainee.ID, f.ordinance.ID, SubmitCheckRequest{
		LearnAimID: f.aim.ID, Stage: 2, Semester: 1, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrStageMustStartAtOne)
}

func TestSubmitNextStageNeedsApproval(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	first := f.submit(t, svc, f.aim.ID, 1, 1)

	// 阶段 1 还未审批，阶段 2 被拒绝
	_, err := svc.SubmitCheck(f.trainee.ID, f.ordinance.ID, SubmitCheckRequest{
		LearnAimID: f.aim.ID, Stage: 2, Semester: 1, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrPriorStageNotApproved)

	// 审批后放行
	f.approve(t, first.ID)
	second := f.submit(t, svc, f.aim.ID, 2, 2)
	assert.Equal(t, 2, second.Stage)
}

func TestSubmitDuplicateStage(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	f.submit(t, svc, f.aim.ID, 1, 1)

	_, err := svc.SubmitCheck(f.trainee.ID, f.ordinance.ID, SubmitCheckRequest{
		LearnAimID: f.aim.ID, Stage: 1, Semester: 2, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrStageAlreadyChecked)
}

func TestSubmitSemesterRegression(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	first := f.submit(t, svc, f.aim.ID, 1, 3)
	f.approve(t, first.ID)

	_, err := svc.SubmitCheck(f.trainee.ID, f.ordinance.ID, SubmitCheckRequest{
		LearnAimID: f.aim.ID, Stage: 2, Semester: 2, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrSemesterRegression)
}

func TestSubmitMembershipGate(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	// 没有条例的学徒不能提交
	_, err := svc.SubmitCheck(f.trainee.ID, 0, SubmitCheckRequest{
		LearnAimID: f.aim.ID, Stage: 1, Semester: 1, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrNoOrdinance)

	// 学习目标不属于学徒的条例
	other := model.EducationOrdinance{Title: "BiVo 14"}
	require.NoError(t, f.db.Create(&other).Error)
	_, err = svc.SubmitCheck(f.trainee.ID, other.ID, SubmitCheckRequest{
		LearnAimID: f.aim.ID, Stage: 1, Semester: 1, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrNotInEducationOrdinance)

	// 不存在的学习目标
	_, err = svc.SubmitCheck(f.trainee.ID, f.ordinance.ID, SubmitCheckRequest{
		LearnAimID: 9999, Stage: 1, Semester: 1, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrLearnAimNotFound)
}

func TestApproveWorkflow(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	check := f.submit(t, svc, f.aim.ID, 1, 1)

	// 学徒不能审批
	_, err := svc.Approve(f.trainee.ID, model.Trainee, check.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// 教练审批，状态与审批人一并写入
	approved, err := svc.Approve(f.coach.ID, model.Coach, check.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CheckApproved, approved.State())
	require.NotNil(t, approved.ApprovedByID)
	assert.Equal(t, f.coach.ID, *approved.ApprovedByID)

	// Approved 是终态，重复审批报冲突
	_, err = svc.Approve(f.coach.ID, model.Coach, check.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyApproved)

	// 不存在的勾选
	_, err = svc.Approve(f.coach.ID, model.Coach, 9999)
	assert.ErrorIs(t, err, util.ErrCheckNotFound)
}

func TestReviseCheck(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	check := f.submit(t, svc, f.aim.ID, 1, 1)

	revised, err := svc.ReviseCheck(f.trainee.ID, f.ordinance.ID, check.ID, ReviseCheckRequest{
		Stage: 1, Semester: 2, Comment: "revised after feedback",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, revised.Semester)
	assert.Equal(t, "revised after feedback", revised.Comment)
	assert.Equal(t, model.CheckPending, revised.State())

	// 其他学徒不能编辑
	_, err = svc.ReviseCheck(f.coach.ID, f.ordinance.ID, check.ID, ReviseCheckRequest{
		Stage: 1, Semester: 2, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrNotOwner)

	// 已审批的勾选不可再编辑
	f.approve(t, check.ID)
	_, err = svc.ReviseCheck(f.trainee.ID, f.ordinance.ID, check.ID, ReviseCheckRequest{
		Stage: 1, Semester: 3, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrAlreadyApproved)
}

func TestReviseSemesterRegression(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	first := f.submit(t, svc, f.aim.ID, 1, 2)
	f.approve(t, first.ID)
	second := f.submit(t, svc, f.aim.ID, 2, 3)

	// 更新不能把学期改到兄弟勾选之前
	_, err := svc.ReviseCheck(f.trainee.ID, f.ordinance.ID, second.ID, ReviseCheckRequest{
		Stage: 2, Semester: 1, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrSemesterRegression)
}

func TestReviseOntoOccupiedStage(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	first := f.submit(t, svc, f.aim.ID, 1, 1)
	f.approve(t, first.ID)
	second := f.submit(t, svc, f.aim.ID, 2, 2)

	// 默认更新模式不重查重复阶段，唯一索引兜底并作为业务拒绝返回
	_, err := svc.ReviseCheck(f.trainee.ID, f.ordinance.ID, second.ID, ReviseCheckRequest{
		Stage: 1, Semester: 2, Comment: "x",
	})
	assert.ErrorIs(t, err, util.ErrStageAlreadyChecked)

	// 两条记录保持原阶段
	unchanged, err := svc.CheckRepo.FindByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, unchanged.Stage)
}

func TestDeclineAndWithdraw(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	// 学徒撤回自己的待审批勾选
	check := f.submit(t, svc, f.aim.ID, 1, 1)
	require.NoError(t, svc.Decline(f.trainee.ID, model.Trainee, check.ID))
	_, err := svc.ChecksForTrainee(f.trainee.ID)
	require.NoError(t, err)

	// 物理删除释放唯一索引，同一阶段可以重新提交
	check = f.submit(t, svc, f.aim.ID, 1, 1)

	// 其他学徒不能删除别人的勾选
	stranger := model.User{Email: "other@example.com", FirstName: "O", LastName: "T", Role: model.Trainee}
	require.NoError(t, f.db.Create(&stranger).Error)
	assert.ErrorIs(t, svc.Decline(stranger.ID, model.Trainee, check.ID), util.ErrNotOwner)

	// 教练可以拒绝任何人的待审批勾选
	require.NoError(t, svc.Decline(f.coach.ID, model.Coach, check.ID))

	// 已审批的勾选双方都删不掉
	check = f.submit(t, svc, f.aim.ID, 1, 1)
	f.approve(t, check.ID)
	assert.ErrorIs(t, svc.Decline(f.trainee.ID, model.Trainee, check.ID), util.ErrAlreadyApproved)
	assert.ErrorIs(t, svc.Decline(f.coach.ID, model.Coach, check.ID), util.ErrAlreadyApproved)
}

func TestChecksForTrainee(t *testing.T) {
	f := newFixture(t)
	svc := f.checkService()

	f.submit(t, svc, f.aim.ID, 1, 1)
	f.submit(t, svc, f.secondAim.ID, 1, 1)

	checks, err := svc.ChecksForTrainee(f.trainee.ID)
	require.NoError(t, err)
	assert.Len(t, checks, 2)

	_, err = svc.ChecksForTrainee(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
