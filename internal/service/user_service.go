package service

import (
	"athena_backend/internal/model"
	"athena_backend/internal/repository"
	"athena_backend/internal/util"
	"context"
	"io"
	"path/filepath"
	"strings"
)

// UserService 用户资料与教练的学徒名册。
// 用户的开通与角色分配发生在外部身份系统，这里不提供。
type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

// UpdateProfileRequest 资料更新请求结构
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
}

func (s *UserService) Profile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.UserRepo.UpdateProfile(user); err != nil {
		return nil, err
	}
	return s.Profile(userID)
}

// Trainees 教练名下的学徒名册
func (s *UserService) Trainees(coachID uint) ([]model.User, error) {
	return s.UserRepo.FindTraineesByCoach(coachID)
}

// UploadAvatar 上传头像到对象存储并更新用户资料，返回访问 URL
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range util.AllowedAvatarExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", util.ErrUnsupportedFileType
	}

	objectName := "avatars/" + model.GenerateUUID() + ext
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	return url, nil
}
