package database

import (
	"athena_backend/internal/config"
	"athena_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 建立数据库连接。migrate 为真时执行 AutoMigrate 并写入基础数据，
// release 模式默认不迁移，由 -migrate / -migrate-only 显式触发。
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	// TranslateError 让唯一索引冲突以 gorm.ErrDuplicatedKey 暴露，
	// 勾选仓库依赖它把并发的同阶段提交映射为业务拒绝
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.EducationOrdinance{},
		&model.Tag{},
		&model.ActionCompetence{},
		&model.LearnAim{},
		&model.LearnAimCheck{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认教育条例
	var count int64
	db.Model(&model.EducationOrdinance{}).Count(&count)
	if count == 0 {
		defaultOrdinances := []string{"BiVo 14", "BiVo 21"}
		for _, title := range defaultOrdinances {
			db.Create(&model.EducationOrdinance{Title: title})
		}
	}

	// 默认标签（为空时插入一些常用标签）
	var tagCount int64
	db.Model(&model.Tag{}).Count(&tagCount)
	if tagCount == 0 {
		defaultTags := []model.Tag{
			{Name: "Database Design"},
			{Name: "SQL"},
			{Name: "Python"},
			{Name: "Go"},
			{Name: "Testing"},
			{Name: "Project Management"},
		}
		for _, t := range defaultTags {
			db.Create(&t)
		}
	}

	return db, nil
}
