package repository

import (
	"athena_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository 提供学习目标目录（行动能力 → 学习目标 → 标签）的只读访问，
// 外加学徒的待办标记维护。目录本身是参考数据，不在此修改。
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// FindCompetencesByOrdinance 按教育条例获取行动能力，连同学习目标与标签
func (r *CatalogRepository) FindCompetencesByOrdinance(ordinanceID uint) ([]model.ActionCompetence, error) {
	var competences []model.ActionCompetence
	err := r.DB.
		Joins("JOIN action_competence_ordinances aco ON aco.action_competence_id = action_competences.id").
		Where("aco.education_ordinance_id = ?", ordinanceID).
		Preload("LearnAims", func(db *gorm.DB) *gorm.DB {
			return db.Order("learn_aims.identification")
		}).
		Preload("LearnAims.Tags").
		Order("action_competences.identification").
		Find(&competences).Error
	return competences, err
}

// FindCompetenceByID 获取单个行动能力，连同其教育条例
func (r *CatalogRepository) FindCompetenceByID(id uint) (*model.ActionCompetence, error) {
	var competence model.ActionCompetence
	err := r.DB.Preload("EducationOrdinances").First(&competence, id).Error
	return &competence, err
}

// FindLearnAimByID 获取学习目标，连同其行动能力与条例（用于成员资格门禁）
func (r *CatalogRepository) FindLearnAimByID(id uint) (*model.LearnAim, error) {
	var aim model.LearnAim
	err := r.DB.
		Preload("ActionCompetence").
		Preload("ActionCompetence.EducationOrdinances").
		Preload("Tags").
		First(&aim, id).Error
	return &aim, err
}

// CountLearnAims 统计行动能力下的学习目标数量
func (r *CatalogRepository) CountLearnAims(competenceID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearnAim{}).
		Where("action_competence_id = ?", competenceID).
		Count(&count).Error
	return count, err
}

// IsMarkedAsTodo 判断学徒是否把学习目标标记为待办
func (r *CatalogRepository) IsMarkedAsTodo(learnAimID, traineeID uint) (bool, error) {
	var count int64
	err := r.DB.Table("learn_aim_todos").
		Where("learn_aim_id = ? AND user_id = ?", learnAimID, traineeID).
		Count(&count).Error
	return count > 0, err
}

// FindTodoAimIDs 学徒标记为待办的全部学习目标ID
func (r *CatalogRepository) FindTodoAimIDs(traineeID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Table("learn_aim_todos").
		Where("user_id = ?", traineeID).
		Pluck("learn_aim_id", &ids).Error
	return ids, err
}

// AddTodo 把学习目标加入学徒的待办
func (r *CatalogRepository) AddTodo(aim *model.LearnAim, trainee *model.User) error {
	return r.DB.Model(aim).Association("MarkedAsTodo").Append(trainee)
}

// RemoveTodo 把学习目标移出学徒的待办
func (r *CatalogRepository) RemoveTodo(aim *model.LearnAim, trainee *model.User) error {
	return r.DB.Model(aim).Association("MarkedAsTodo").Delete(trainee)
}
