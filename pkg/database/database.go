package database

import (
	"corpready_backend/internal/config"
	"corpready_backend/internal/model"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB migrate 为假时只建连接，生产环境用 -migrate 参数显式迁移
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

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		Seed(db)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Domain{},
		&model.Topic{},
		&model.Course{},
		&model.CourseModule{},
		&model.Video{},
		&model.VideoProgress{},
		&model.CourseProgress{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.Certificate{},
		&model.Internship{},
		&model.SavedInternship{},
		&model.InternshipApplication{},
		&model.Mentor{},
		&model.MentorSession{},
		&model.AdminActionLog{},
	)
}

// Seed 空库时写入默认目录树与测验，便于前端联调
func Seed(db *gorm.DB) {
	var domainCount int64
	db.Model(&model.Domain{}).Count(&domainCount)
	if domainCount == 0 {
		webDomain := &model.Domain{
			Name:        "Web Development",
			Description: "从 HTML 基础到全栈项目",
		}
		db.Create(webDomain)

		frontendTopic := &model.Topic{
			DomainID:    webDomain.ID,
			Name:        "Frontend Basics",
			Description: "页面结构、样式与交互",
			Order:       1,
		}
		db.Create(frontendTopic)

		course := &model.Course{
			TopicID:        frontendTopic.ID,
			Title:          "HTML Basics",
			Description:    "HTML 入门课程",
			EstimatedHours: 4,
			SkillLevel:     "beginner",
			TargetAudience: "working professionals",
			Source:         model.CourseSourceSeed,
		}
		db.Create(course)

		mod := &model.CourseModule{
			CourseID: course.ID,
			Title:    "Getting Started",
			Order:    1,
		}
		db.Create(mod)

		videos := []model.Video{
			{ModuleID: mod.ID, Title: "HTML in 100 Seconds", YouTubeID: "ok-plXXHlWw", Order: 1},
			{ModuleID: mod.ID, Title: "HTML Full Course", YouTubeID: "kUMe1FH4CHE", Order: 2},
		}
		for i := range videos {
			db.Create(&videos[i])
		}

		quiz := &model.Quiz{
			CourseID:     course.ID,
			Title:        "HTML Basics Quiz",
			PassingScore: 60,
		}
		db.Create(quiz)

		questions := []model.QuizQuestion{
			{
				QuizID:        quiz.ID,
				Text:          "HTML 中用于最高级标题的标签是？",
				Options:       []string{"<h6>", "<h1>", "<head>", "<title>"},
				CorrectAnswer: 1,
				Order:         1,
			},
			{
				QuizID:        quiz.ID,
				Text:          "哪个属性用于指定超链接的目标地址？",
				Options:       []string{"src", "link", "href", "url"},
				CorrectAnswer: 2,
				Order:         2,
			},
		}
		for i := range questions {
			db.Create(&questions[i])
		}
	}

	var mentorCount int64
	db.Model(&model.Mentor{}).Count(&mentorCount)
	if mentorCount == 0 {
		defaultMentors := []model.Mentor{
			{Name: "Priya Sharma", Title: "Senior Frontend Engineer", Company: "Flipkart", Expertise: "React, 系统设计面试"},
			{Name: "Rahul Verma", Title: "Backend Lead", Company: "Zomato", Expertise: "Go, 分布式系统"},
			{Name: "Ananya Iyer", Title: "Data Scientist", Company: "Swiggy", Expertise: "机器学习, 求职辅导"},
		}
		for i := range defaultMentors {
			db.Create(&defaultMentors[i])
		}
	}

	var internCount int64
	db.Model(&model.Internship{}).Count(&internCount)
	if internCount == 0 {
		deadline := time.Now().AddDate(0, 1, 0)
		db.Create(&model.Internship{
			Title:    "Frontend Developer Intern",
			Company:  "CorpReady Labs",
			Location: "Remote",
			Mode:     "remote",
			Stipend:  "₹15,000/month",
			Source:   model.InternshipSourceAdmin,
			Deadline: &deadline,
		})
	}
}
