package service

import (
	"corpready_backend/internal/config"
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/pkg/database"
	"corpready_backend/pkg/logger"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Server.BaseURL = "http://localhost:8080"
	cfg.JWT.Secret = "test-secret-key-for-unit-tests-only"
	cfg.JWT.AccessExpire = 15 * time.Minute
	cfg.JWT.RefreshExpire = 24 * time.Hour
	cfg.Certificate.CacheDir = t.TempDir()
	return cfg
}

// recordingMailer 记录每次发信调用，供断言使用
type recordingMailer struct {
	mu            sync.Mutex
	verifications []string
	resets        []string
	completions   []string
	certificates  []string
	failAll       bool
}

func (m *recordingMailer) SendVerification(user *model.User, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return fmt.Errorf("mailer down")
	}
	m.verifications = append(m.verifications, user.Email)
	return nil
}

func (m *recordingMailer) SendPasswordReset(user *model.User, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return fmt.Errorf("mailer down")
	}
	m.resets = append(m.resets, user.Email)
	return nil
}

func (m *recordingMailer) SendCourseCompletion(user *model.User, courseName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return fmt.Errorf("mailer down")
	}
	m.completions = append(m.completions, courseName)
	return nil
}

func (m *recordingMailer) SendCertificateReady(user *model.User, cert *model.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return fmt.Errorf("mailer down")
	}
	m.certificates = append(m.certificates, cert.CertificateCode)
	return nil
}

func (m *recordingMailer) completionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.completions)
}

func (m *recordingMailer) certificateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.certificates)
}

var _ Mailer = (*recordingMailer)(nil)

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &model.User{
		Name:     "Test Learner",
		Email:    email,
		Password: string(hashed),
		Role:     model.Learner,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// createTestCourse 建一门带 videoCount 个视频的单模块课程
func createTestCourse(t *testing.T, db *gorm.DB, title string, videoCount int) *model.Course {
	t.Helper()
	domain := &model.Domain{Name: "Domain " + title}
	if err := db.Create(domain).Error; err != nil {
		t.Fatalf("create test domain: %v", err)
	}
	topic := &model.Topic{DomainID: domain.ID, Name: "Topic " + title}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("create test topic: %v", err)
	}
	course := &model.Course{
		TopicID: topic.ID,
		Title:   title,
		Source:  model.CourseSourceSeed,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create test course: %v", err)
	}
	mod := &model.CourseModule{CourseID: course.ID, Title: "Module 1", Order: 1}
	if err := db.Create(mod).Error; err != nil {
		t.Fatalf("create test module: %v", err)
	}
	for i := 0; i < videoCount; i++ {
		video := &model.Video{
			ModuleID:  mod.ID,
			Title:     fmt.Sprintf("Video %d", i+1),
			YouTubeID: fmt.Sprintf("yt%d", i+1),
			Order:     i + 1,
		}
		if err := db.Create(video).Error; err != nil {
			t.Fatalf("create test video: %v", err)
		}
	}
	return course
}

func newProgressFixtures(t *testing.T) (*ProgressService, *CertificateService, *recordingMailer, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig(t)
	mailer := &recordingMailer{}

	certService := NewCertificateService(
		repository.NewCertificateRepository(db),
		repository.NewUserRepository(db),
		cfg,
	)
	progressService := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewCourseRepository(db),
		repository.NewUserRepository(db),
		certService,
		mailer,
	)
	// 测试里同步执行完课检查，避免对 goroutine 做时序断言
	progressService.asyncCheck = false
	return progressService, certService, mailer, db
}
