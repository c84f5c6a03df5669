package repository

import (
	"athena_backend/internal/model"
	"athena_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CheckRepository 处理勾选记录的数据访问。
// 校验器本身是读取后判定、非原子的，因此并发正确性依赖这里的两个手段：
// (trainee, learn_aim, stage) 上的唯一索引关闭重复阶段的创建竞争，
// 审批与删除使用以 is_approved=false 为条件的单条语句，保证竞争只有一个赢家。
type CheckRepository struct {
	DB *gorm.DB
}

func NewCheckRepository(db *gorm.DB) *CheckRepository {
	return &CheckRepository{DB: db}
}

// Create 插入一条待审批的勾选记录；唯一索引冲突映射为阶段已勾选
func (r *CheckRepository) Create(check *model.LearnAimCheck) error {
	err := r.DB.Create(check).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrStageAlreadyChecked
	}
	return err
}

func (r *CheckRepository) FindByID(id uint) (*model.LearnAimCheck, error) {
	var check model.LearnAimCheck
	err := r.DB.
		Preload("LearnAim").
		Preload("LearnAim.Tags").
		Preload("ApprovedBy").
		First(&check, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCheckNotFound
	}
	return &check, err
}

// FindByTraineeAndLearnAim 获取学徒在某个学习目标上的全部勾选，按阶段升序。
// 升序是校验器确定性报错顺序的前提。
func (r *CheckRepository) FindByTraineeAndLearnAim(traineeID, learnAimID uint) ([]model.LearnAimCheck, error) {
	var checks []model.LearnAimCheck
	err := r.DB.
		Where("trainee_id = ? AND learn_aim_id = ?", traineeID, learnAimID).
		Order("stage").
		Find(&checks).Error
	return checks, err
}

// FindByTrainee 获取学徒的全部勾选记录
func (r *CheckRepository) FindByTrainee(traineeID uint) ([]model.LearnAimCheck, error) {
	var checks []model.LearnAimCheck
	err := r.DB.
		Preload("LearnAim").
		Preload("LearnAim.Tags").
		Preload("ApprovedBy").
		Where("trainee_id = ?", traineeID).
		Order("learn_aim_id, stage").
		Find(&checks).Error
	return checks, err
}

// UpdateFields 更新待审批勾选的可编辑字段。
// 与审批/删除同一套条件更新纪律：以 is_approved=false 为条件，
// 并发的审批赢得竞争后编辑不再落盘，已审批的记录保持不可变。
// 改到已被占用的阶段会撞上唯一索引，同样映射为阶段已勾选。
func (r *CheckRepository) UpdateFields(check *model.LearnAimCheck) error {
	result := r.DB.Model(&model.LearnAimCheck{}).
		Where("id = ? AND is_approved = ?", check.ID, false).
		Updates(map[string]interface{}{
			"stage":      check.Stage,
			"semester":   check.Semester,
			"comment":    check.Comment,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return util.ErrStageAlreadyChecked
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.pendingConflict(check.ID)
	}
	return nil
}

// ApproveIfPending 原子地把待审批记录置为已审批并写入审批人。
// 条件更新保证并发的 approve/decline 恰好一个生效；
// 已审批的记录不受影响，RowsAffected 为 0。
func (r *CheckRepository) ApproveIfPending(checkID, coachID uint) error {
	result := r.DB.Model(&model.LearnAimCheck{}).
		Where("id = ? AND is_approved = ?", checkID, false).
		Updates(map[string]interface{}{
			"is_approved":    true,
			"approved_by_id": coachID,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.pendingConflict(checkID)
	}
	return nil
}

// DeleteIfPending 原子地删除待审批记录；已审批的记录不可删除
func (r *CheckRepository) DeleteIfPending(checkID uint) error {
	result := r.DB.
		Where("id = ? AND is_approved = ?", checkID, false).
		Delete(&model.LearnAimCheck{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.pendingConflict(checkID)
	}
	return nil
}

// pendingConflict 区分条件更新未命中的原因：记录不存在还是已审批
func (r *CheckRepository) pendingConflict(checkID uint) error {
	var count int64
	if err := r.DB.Model(&model.LearnAimCheck{}).Where("id = ?", checkID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return util.ErrCheckNotFound
	}
	return util.ErrAlreadyApproved
}

// CountClosed 统计学徒在某行动能力下已完结（第 3 阶段且已审批）的学习目标数量
func (r *CheckRepository) CountClosed(traineeID, competenceID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearnAimCheck{}).
		Joins("JOIN learn_aims ON learn_aims.id = learn_aim_checks.learn_aim_id").
		Where("learn_aims.action_competence_id = ?", competenceID).
		Where("learn_aim_checks.trainee_id = ?", traineeID).
		Where("learn_aim_checks.stage = ? AND learn_aim_checks.is_approved = ?", model.MaxStage, true).
		Count(&count).Error
	return count, err
}

// MaxApprovedStage 学徒在某学习目标上已审批的最高阶段，没有则为 0
func (r *CheckRepository) MaxApprovedStage(traineeID, learnAimID uint) (int, error) {
	var stage *int
	err := r.DB.Model(&model.LearnAimCheck{}).
		Select("MAX(stage)").
		Where("trainee_id = ? AND learn_aim_id = ? AND is_approved = ?", traineeID, learnAimID, true).
		Scan(&stage).Error
	if err != nil || stage == nil {
		return 0, err
	}
	return *stage, nil
}
