package service

import (
	"athena_backend/internal/model"
	"athena_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 打开一个内存 SQLite，与生产一致地开启 TranslateError，
// 让唯一索引冲突以 gorm.ErrDuplicatedKey 暴露
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.EducationOrdinance{},
		&model.Tag{},
		&model.ActionCompetence{},
		&model.LearnAim{},
		&model.LearnAimCheck{},
	))
	return db
}

// fixture 一套最小的领域数据：一个条例、一位教练、一名学徒、
// 一个带两个学习目标的行动能力
type fixture struct {
	db         *gorm.DB
	ordinance  model.EducationOrdinance
	coach      model.User
	trainee    model.User
	competence model.ActionCompetence
	aim        model.LearnAim
	secondAim  model.LearnAim
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{db: db}

	f.ordinance = model.EducationOrdinance{Title: "BiVo 21"}
	require.NoError(t, db.Create(&f.ordinance).Error)

	f.coach = model.User{
		Email:     "coach@example.com",
		FirstName: "Carla",
		LastName:  "Coach",
		Role:      model.Coach,
		LastSeen:  time.Now(),
	}
	require.NoError(t, db.Create(&f.coach).Error)

	f.trainee = model.User{
		Email:                "trainee@example.com",
		FirstName:            "Toni",
		LastName:             "Trainee",
		Role:                 model.Trainee,
		AssignedCoachID:      &f.coach.ID,
		EducationOrdinanceID: &f.ordinance.ID,
		LastSeen:             time.Now(),
	}
	require.NoError(t, db.Create(&f.trainee).Error)

	f.competence = model.ActionCompetence{
		Identification:      "A1",
		Title:               "Create a database",
		Description:         "Design and implement relational databases",
		EducationOrdinances: []model.EducationOrdinance{f.ordinance},
	}
	require.NoError(t, db.Create(&f.competence).Error)

	f.aim = model.LearnAim{
		ActionCompetenceID: f.competence.ID,
		Identification:     "A1.1",
		Description:        "Normalize a schema to 3NF",
		TaxonomyLevel:      3,
		ExampleText:        "Given an unnormalized table, derive 3NF",
	}
	require.NoError(t, db.Create(&f.aim).Error)

	f.secondAim = model.LearnAim{
		ActionCompetenceID: f.competence.ID,
		Identification:     "A1.2",
		Description:        "Write aggregate queries",
		TaxonomyLevel:      4,
		ExampleText:        "Monthly revenue per customer",
	}
	require.NoError(t, db.Create(&f.secondAim).Error)

	return f
}

func (f *fixture) checkService() *CheckService {
	checkRepo := repository.NewCheckRepository(f.db)
	catalogRepo := repository.NewCatalogRepository(f.db)
	userRepo := repository.NewUserRepository(f.db)
	progress := NewProgressService(checkRepo, catalogRepo, userRepo, nil, 0)
	return NewCheckService(checkRepo, catalogRepo, userRepo, NewCheckValidator(false), progress)
}

func (f *fixture) progressService() *ProgressService {
	checkRepo := repository.NewCheckRepository(f.db)
	catalogRepo := repository.NewCatalogRepository(f.db)
	userRepo := repository.NewUserRepository(f.db)
	return NewProgressService(checkRepo, catalogRepo, userRepo, nil, 0)
}

func (f *fixture) catalogService() *CatalogService {
	checkRepo := repository.NewCheckRepository(f.db)
	catalogRepo := repository.NewCatalogRepository(f.db)
	userRepo := repository.NewUserRepository(f.db)
	return NewCatalogService(catalogRepo, checkRepo, userRepo)
}

// approve 直接把一条勾选置为已审批，绕过工作流，供铺垫数据用
func (f *fixture) approve(t *testing.T, checkID uint) {
	t.Helper()
	require.NoError(t, repository.NewCheckRepository(f.db).ApproveIfPending(checkID, f.coach.ID))
}

// submit 提交一条勾选并要求成功
func (f *fixture) submit(t *testing.T, svc *CheckService, aimID uint, stage, semester int) *model.LearnAimCheck {
	t.Helper()
	check, err := svc.SubmitCheck(f.trainee.ID, f.ordinance.ID, SubmitCheckRequest{
		LearnAimID: aimID,
		Stage:      stage,
		Semester:   semester,
		Comment:    "done in project work",
	})
	require.NoError(t, err)
	return check
}
