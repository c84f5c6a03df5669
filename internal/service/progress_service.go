package service

import (
	"athena_backend/internal/model"
	"athena_backend/internal/repository"
	"athena_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ProgressService 按需汇总学徒在各行动能力上的完成度。
// 汇总只读取已审批的第 3 阶段勾选。结果可经 Redis 缓存，
// 勾选的每次变更都会使该学徒的缓存整体失效。
type ProgressService struct {
	CheckRepo   *repository.CheckRepository
	CatalogRepo *repository.CatalogRepository
	UserRepo    *repository.UserRepository
	Redis       *redis.Client // 为 nil 时不缓存
	CacheTTL    time.Duration
}

func NewProgressService(
	checkRepo *repository.CheckRepository,
	catalogRepo *repository.CatalogRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *ProgressService {
	return &ProgressService{
		CheckRepo:   checkRepo,
		CatalogRepo: catalogRepo,
		UserRepo:    userRepo,
		Redis:       rdb,
		CacheTTL:    cacheTTL,
	}
}

// CompetenceProgress 单个行动能力的 {closed, total}。
// 没有学习目标的行动能力返回 {0, 0}。
func (s *ProgressService) CompetenceProgress(traineeID, ordinanceID, competenceID uint) (*model.CompetenceProgress, error) {
	competence, err := s.CatalogRepo.FindCompetenceByID(competenceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrCompetenceNotFound
		}
		return nil, err
	}

	if ordinanceID == 0 {
		return nil, util.ErrNoOrdinance
	}
	if !competence.InOrdinance(ordinanceID) {
		return nil, util.ErrNotInEducationOrdinance
	}

	if cached := s.cacheGet(traineeID, competenceID); cached != nil {
		return cached, nil
	}

	progress, err := s.summarize(traineeID, competence)
	if err != nil {
		return nil, err
	}

	s.cacheSet(traineeID, competenceID, progress)
	return progress, nil
}

// Chart 学徒所属条例下全部行动能力的完成度，供仪表盘绘图
func (s *ProgressService) Chart(traineeID, ordinanceID uint) ([]model.CompetenceProgress, error) {
	if ordinanceID == 0 {
		return nil, util.ErrNoOrdinance
	}

	competences, err := s.CatalogRepo.FindCompetencesByOrdinance(ordinanceID)
	if err != nil {
		return nil, err
	}

	rows := make([]model.CompetenceProgress, 0, len(competences))
	for i := range competences {
		progress, err := s.summarize(traineeID, &competences[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, *progress)
	}
	return rows, nil
}

// Invalidate 勾选变更后清掉该学徒的全部进度缓存
func (s *ProgressService) Invalidate(traineeID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), s.cacheKey(traineeID))
}

func (s *ProgressService) summarize(traineeID uint, competence *model.ActionCompetence) (*model.CompetenceProgress, error) {
	total, err := s.CatalogRepo.CountLearnAims(competence.ID)
	if err != nil {
		return nil, err
	}

	var closed int64
	if total > 0 {
		closed, err = s.CheckRepo.CountClosed(traineeID, competence.ID)
		if err != nil {
			return nil, err
		}
	}

	return &model.CompetenceProgress{
		ActionCompetenceID: competence.ID,
		Name:               competence.Name(),
		Closed:             closed,
		Total:              total,
	}, nil
}

func (s *ProgressService) cacheKey(traineeID uint) string {
	return fmt.Sprintf("progress:%d", traineeID)
}

// 每个学徒一个 hash，字段为行动能力ID；失效时整键删除
func (s *ProgressService) cacheGet(traineeID, competenceID uint) *model.CompetenceProgress {
	if s.Redis == nil {
		return nil
	}
	raw, err := s.Redis.HGet(context.Background(), s.cacheKey(traineeID), fmt.Sprint(competenceID)).Result()
	if err != nil {
		return nil
	}
	var progress model.CompetenceProgress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		return nil
	}
	return &progress
}

func (s *ProgressService) cacheSet(traineeID, competenceID uint, progress *model.CompetenceProgress) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(progress)
	if err != nil {
		return
	}
	ctx := context.Background()
	key := s.cacheKey(traineeID)
	s.Redis.HSet(ctx, key, fmt.Sprint(competenceID), raw)
	s.Redis.Expire(ctx, key, s.CacheTTL)
}
