package repository

import (
	"athena_backend/internal/model"
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserRepository 处理用户的数据访问。
// 用户由外部身份系统预先开通，这里只读与维护资料，不提供注册。
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("EducationOrdinance").First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindTraineesByCoach 获取分配给某位教练的所有学徒
func (r *UserRepository) FindTraineesByCoach(coachID uint) ([]model.User, error) {
	var trainees []model.User
	err := r.DB.Preload("EducationOrdinance").
		Where("assigned_coach_id = ? AND role = ?", coachID, model.Trainee).
		Order("last_name, first_name").
		Find(&trainees).Error
	return trainees, err
}

// Exists 判断用户是否存在
func (r *UserRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateProfile(user *model.User) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) UpdateAvatar(userID uint, avatarURL string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("avatar", avatarURL).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).Error
}

// IsNotFound 判断是否为记录不存在错误
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
