package service

import (
	"athena_backend/internal/model"
	"athena_backend/internal/repository"
	"athena_backend/internal/util"
)

// CheckService 勾选记录的审批工作流：Pending → Approved，
// 或在 Pending 期间被学徒撤回/被教练拒绝。Approved 是终态。
type CheckService struct {
	CheckRepo   *repository.CheckRepository
	CatalogRepo *repository.CatalogRepository
	UserRepo    *repository.UserRepository
	Validator   *CheckValidator
	Progress    *ProgressService
}

func NewCheckService(
	checkRepo *repository.CheckRepository,
	catalogRepo *repository.CatalogRepository,
	userRepo *repository.UserRepository,
	validator *CheckValidator,
	progress *ProgressService,
) *CheckService {
	return &CheckService{
		CheckRepo:   checkRepo,
		CatalogRepo: catalogRepo,
		UserRepo:    userRepo,
		Validator:   validator,
		Progress:    progress,
	}
}

// SubmitCheckRequest 新建勾选的请求结构
type SubmitCheckRequest struct {
	LearnAimID uint   `json:"learnAimId" binding:"required"`
	Stage      int    `json:"stage" binding:"required,min=1,max=3"`
	Semester   int    `json:"semester" binding:"required,min=1,max=8"`
	Comment    string `json:"comment" binding:"required,max=254"`
}

// ReviseCheckRequest 更新勾选的请求结构
type ReviseCheckRequest struct {
	Stage    int    `json:"stage" binding:"required,min=1,max=3"`
	Semester int    `json:"semester" binding:"required,min=1,max=8"`
	Comment  string `json:"comment" binding:"required,max=254"`
}

// SubmitCheck 学徒提交一条新的勾选，成功后处于待审批状态。
// 先做教育条例成员资格门禁，再跑进阶校验。
func (s *CheckService) SubmitCheck(traineeID, ordinanceID uint, req SubmitCheckRequest) (*model.LearnAimCheck, error) {
	aim, err := s.CatalogRepo.FindLearnAimByID(req.LearnAimID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrLearnAimNotFound
		}
		return nil, err
	}

	if err := s.membershipGate(aim, ordinanceID); err != nil {
		return nil, err
	}

	siblings, err := s.CheckRepo.FindByTraineeAndLearnAim(traineeID, req.LearnAimID)
	if err != nil {
		return nil, err
	}

	check := &model.LearnAimCheck{
		TraineeID:  traineeID,
		LearnAimID: req.LearnAimID,
		Stage:      req.Stage,
		Semester:   req.Semester,
		Comment:    req.Comment,
	}

	if err := s.Validator.Validate(siblings, check, ValidateCreate); err != nil {
		return nil, err
	}

	// 唯一索引兜底并发的同阶段提交，冲突同样报阶段已勾选
	if err := s.CheckRepo.Create(check); err != nil {
		return nil, err
	}

	s.Progress.Invalidate(traineeID)
	return s.CheckRepo.FindByID(check.ID)
}

// ReviseCheck 学徒编辑自己的待审批勾选
func (s *CheckService) ReviseCheck(traineeID, ordinanceID, checkID uint, req ReviseCheckRequest) (*model.LearnAimCheck, error) {
	check, err := s.CheckRepo.FindByID(checkID)
	if err != nil {
		return nil, err
	}

	if check.IsApproved {
		return nil, util.ErrAlreadyApproved
	}
	if check.TraineeID != traineeID {
		return nil, util.ErrNotOwner
	}

	aim, err := s.CatalogRepo.FindLearnAimByID(check.LearnAimID)
	if err != nil {
		return nil, err
	}
	if err := s.membershipGate(aim, ordinanceID); err != nil {
		return nil, err
	}

	siblings, err := s.CheckRepo.FindByTraineeAndLearnAim(traineeID, check.LearnAimID)
	if err != nil {
		return nil, err
	}

	updated := *check
	updated.Stage = req.Stage
	updated.Semester = req.Semester
	updated.Comment = req.Comment

	if err := s.Validator.Validate(siblings, &updated, ValidateUpdate); err != nil {
		return nil, err
	}

	if err := s.CheckRepo.UpdateFields(&updated); err != nil {
		return nil, err
	}

	s.Progress.Invalidate(traineeID)
	return s.CheckRepo.FindByID(checkID)
}

// Approve 教练审批一条待审批勾选。重复审批报 ErrAlreadyApproved，
// 并发的审批/拒绝由仓库层的条件更新裁决。
func (s *CheckService) Approve(coachID uint, role model.UserRole, checkID uint) (*model.LearnAimCheck, error) {
	if role != model.Coach {
		return nil, util.ErrPermissionDenied
	}

	check, err := s.CheckRepo.FindByID(checkID)
	if err != nil {
		return nil, err
	}

	if err := s.CheckRepo.ApproveIfPending(checkID, coachID); err != nil {
		return nil, err
	}

	s.Progress.Invalidate(check.TraineeID)
	return s.CheckRepo.FindByID(checkID)
}

// Decline 删除一条待审批勾选：教练可拒绝任何人的，学徒只能撤回自己的。
// 已审批的勾选双方都不可删除。
func (s *CheckService) Decline(actorID uint, role model.UserRole, checkID uint) error {
	check, err := s.CheckRepo.FindByID(checkID)
	if err != nil {
		return err
	}

	if role != model.Coach && check.TraineeID != actorID {
		return util.ErrNotOwner
	}

	if err := s.CheckRepo.DeleteIfPending(checkID); err != nil {
		return err
	}

	s.Progress.Invalidate(check.TraineeID)
	return nil
}

// ChecksForTrainee 某个学徒的全部勾选记录（教练视角）
func (s *CheckService) ChecksForTrainee(traineeID uint) ([]model.LearnAimCheck, error) {
	exists, err := s.UserRepo.Exists(traineeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrUserNotFound
	}
	return s.CheckRepo.FindByTrainee(traineeID)
}

// membershipGate 学习目标必须属于学徒的教育条例
func (s *CheckService) membershipGate(aim *model.LearnAim, ordinanceID uint) error {
	if ordinanceID == 0 {
		return util.ErrNoOrdinance
	}
	if aim.ActionCompetence == nil || !aim.ActionCompetence.InOrdinance(ordinanceID) {
		return util.ErrNotInEducationOrdinance
	}
	return nil
}
