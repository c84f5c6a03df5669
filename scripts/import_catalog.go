// 行动能力目录导入脚本
//
// 从 YAML 文件批量导入行动能力与学习目标，并关联到指定的教育条例。
// 用于首次部署或条例更新后整批替换目录内容。
//
// 用法: go run scripts/import_catalog.go -file catalog.yaml -ordinance "BiVo 21"

package main

import (
	"athena_backend/internal/config"
	"athena_backend/internal/model"
	"athena_backend/pkg/database"
	"athena_backend/pkg/logger"
	"flag"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Competences []struct {
		Identification   string `yaml:"identification"`
		Title            string `yaml:"title"`
		Description      string `yaml:"description"`
		VocationalSchool string `yaml:"vocational_school"`
		OverboardCourse  string `yaml:"overboard_course"`
		LearnAims        []struct {
			Identification string   `yaml:"identification"`
			Description    string   `yaml:"description"`
			TaxonomyLevel  int      `yaml:"taxonomy_level"`
			ExampleText    string   `yaml:"example_text"`
			Tags           []string `yaml:"tags"`
		} `yaml:"learn_aims"`
	} `yaml:"competences"`
}

func main() {
	file := flag.String("file", "catalog.yaml", "目录 YAML 文件路径")
	ordinanceTitle := flag.String("ordinance", "", "目标教育条例标题")
	flag.Parse()

	if *ordinanceTitle == "" {
		log.Fatal("必须通过 -ordinance 指定教育条例")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode != "release")
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取目录文件: %v", err)
	}

	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		log.Fatalf("解析目录文件失败: %v", err)
	}

	var ordinance model.EducationOrdinance
	if err := db.Where("title = ?", *ordinanceTitle).First(&ordinance).Error; err != nil {
		log.Fatalf("教育条例 %q 不存在: %v", *ordinanceTitle, err)
	}

	for _, c := range catalog.Competences {
		competence := model.ActionCompetence{
			Identification:                    c.Identification,
			Title:                             c.Title,
			Description:                       c.Description,
			AssociatedModulesVocationalSchool: c.VocationalSchool,
			AssociatedModulesOverboardCourse:  c.OverboardCourse,
			EducationOrdinances:               []model.EducationOrdinance{ordinance},
		}

		for _, a := range c.LearnAims {
			if a.TaxonomyLevel < model.MinTaxonomyLevel || a.TaxonomyLevel > model.MaxTaxonomyLevel {
				log.Fatalf("学习目标 %s 的分类学层级 %d 超出范围", a.Identification, a.TaxonomyLevel)
			}

			aim := model.LearnAim{
				Identification: a.Identification,
				Description:    a.Description,
				TaxonomyLevel:  a.TaxonomyLevel,
				ExampleText:    a.ExampleText,
			}
			// 标签按名称复用，不存在则创建
			for _, name := range a.Tags {
				var tag model.Tag
				db.Where("name = ?", name).FirstOrCreate(&tag, model.Tag{Name: name})
				aim.Tags = append(aim.Tags, tag)
			}
			competence.LearnAims = append(competence.LearnAims, aim)
		}

		if err := db.Create(&competence).Error; err != nil {
			log.Fatalf("导入行动能力 %s 失败: %v", c.Identification, err)
		}
		log.Printf("已导入 %s（%d 个学习目标）", competence.Name(), len(competence.LearnAims))
	}

	log.Println("目录导入完成")
}
