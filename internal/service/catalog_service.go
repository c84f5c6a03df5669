package service

import (
	"athena_backend/internal/model"
	"athena_backend/internal/repository"
	"athena_backend/internal/util"
)

// CatalogService 学习目标目录的展示逻辑：按条例列出行动能力与学习目标，
// 附上查看对象的勾选历史与待办标记。教练可指定学徒视角。
type CatalogService struct {
	CatalogRepo *repository.CatalogRepository
	CheckRepo   *repository.CheckRepository
	UserRepo    *repository.UserRepository
}

func NewCatalogService(
	catalogRepo *repository.CatalogRepository,
	checkRepo *repository.CheckRepository,
	userRepo *repository.UserRepository,
) *CatalogService {
	return &CatalogService{
		CatalogRepo: catalogRepo,
		CheckRepo:   checkRepo,
		UserRepo:    userRepo,
	}
}

// LearnAimView 学习目标加上查看对象的勾选历史（按阶段升序）与待办标记
type LearnAimView struct {
	ID            uint                  `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	TaxonomyLevel int                   `json:"taxonomyLevel"`
	ExampleText   string                `json:"exampleText"`
	Tags          []model.Tag           `json:"tags"`
	Checked       []model.LearnAimCheck `json:"checked"`
	MarkedAsTodo  bool                  `json:"markedAsTodo"`
}

// CompetenceView 行动能力及其学习目标视图
type CompetenceView struct {
	ID                                uint           `json:"id"`
	Name                              string         `json:"name"`
	Description                       string         `json:"description"`
	AssociatedModulesVocationalSchool string         `json:"associatedModulesVocationalSchool"`
	AssociatedModulesOverboardCourse  string         `json:"associatedModulesOverboardCourse"`
	LearnAims                         []LearnAimView `json:"learnAims"`
}

// ListCompetences 列出查看对象条例下的行动能力目录。
// viewer 是教练且给出 studentID 时，以该学徒为查看对象。
func (s *CatalogService) ListCompetences(viewer *util.Claims, studentID uint) ([]CompetenceView, error) {
	target, err := s.resolveTarget(viewer, studentID)
	if err != nil {
		return nil, err
	}
	if target.EducationOrdinanceID == nil {
		return nil, util.ErrNoOrdinance
	}

	competences, err := s.CatalogRepo.FindCompetencesByOrdinance(*target.EducationOrdinanceID)
	if err != nil {
		return nil, err
	}

	checks, err := s.CheckRepo.FindByTrainee(target.ID)
	if err != nil {
		return nil, err
	}
	checksByAim := make(map[uint][]model.LearnAimCheck)
	for _, c := range checks {
		c.LearnAim = nil // 嵌套在学习目标下，避免重复展开
		checksByAim[c.LearnAimID] = append(checksByAim[c.LearnAimID], c)
	}

	todoIDs, err := s.CatalogRepo.FindTodoAimIDs(target.ID)
	if err != nil {
		return nil, err
	}
	todoSet := make(map[uint]bool, len(todoIDs))
	for _, id := range todoIDs {
		todoSet[id] = true
	}

	views := make([]CompetenceView, 0, len(competences))
	for i := range competences {
		competence := &competences[i]
		view := CompetenceView{
			ID:                                competence.ID,
			Name:                              competence.Name(),
			Description:                       competence.Description,
			AssociatedModulesVocationalSchool: competence.AssociatedModulesVocationalSchool,
			AssociatedModulesOverboardCourse:  competence.AssociatedModulesOverboardCourse,
			LearnAims:                         make([]LearnAimView, 0, len(competence.LearnAims)),
		}
		for j := range competence.LearnAims {
			aim := &competence.LearnAims[j]
			aim.ActionCompetence = competence
			checked := checksByAim[aim.ID]
			if checked == nil {
				checked = []model.LearnAimCheck{}
			}
			view.LearnAims = append(view.LearnAims, LearnAimView{
				ID:            aim.ID,
				Name:          aim.Name(),
				Description:   aim.Description,
				TaxonomyLevel: aim.TaxonomyLevel,
				ExampleText:   aim.ExampleText,
				Tags:          aim.Tags,
				Checked:       checked,
				MarkedAsTodo:  todoSet[aim.ID],
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// ToggleTodo 学徒切换学习目标的待办标记。
// 已完全掌握（第 3 阶段已审批）的学习目标只会被清除标记并拒绝。
func (s *CatalogService) ToggleTodo(traineeID, learnAimID uint) (bool, error) {
	aim, err := s.CatalogRepo.FindLearnAimByID(learnAimID)
	if err != nil {
		if repository.IsNotFound(err) {
			return false, util.ErrLearnAimNotFound
		}
		return false, err
	}

	trainee := &model.User{BaseModel: model.BaseModel{ID: traineeID}}

	maxStage, err := s.CheckRepo.MaxApprovedStage(traineeID, learnAimID)
	if err != nil {
		return false, err
	}
	if maxStage >= model.MaxStage {
		if err := s.CatalogRepo.RemoveTodo(aim, trainee); err != nil {
			return false, err
		}
		return false, util.ErrLearnAimCompleted
	}

	marked, err := s.CatalogRepo.IsMarkedAsTodo(learnAimID, traineeID)
	if err != nil {
		return false, err
	}
	if marked {
		return false, s.CatalogRepo.RemoveTodo(aim, trainee)
	}
	return true, s.CatalogRepo.AddTodo(aim, trainee)
}

// resolveTarget 确定目录的查看对象：默认是调用者本人，
// 教练可通过 studentID 查看其学徒
func (s *CatalogService) resolveTarget(viewer *util.Claims, studentID uint) (*model.User, error) {
	targetID := viewer.UserID
	if studentID != 0 && studentID != viewer.UserID {
		if viewer.Role != model.Coach {
			return nil, util.ErrPermissionDenied
		}
		targetID = studentID
	}

	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return target, nil
}
