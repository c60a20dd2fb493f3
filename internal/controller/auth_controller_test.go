package controller

import (
	"bytes"
	"corpready_backend/internal/config"
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/service"
	"corpready_backend/pkg/database"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type nopMailer struct{}

func (nopMailer) SendVerification(*model.User, string) error           { return nil }
func (nopMailer) SendPasswordReset(*model.User, string) error          { return nil }
func (nopMailer) SendCourseCompletion(*model.User, string) error       { return nil }
func (nopMailer) SendCertificateReady(*model.User, *model.Certificate) error { return nil }

func newLoginRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-for-unit-tests-only"
	cfg.JWT.AccessExpire = 15 * time.Minute
	cfg.JWT.RefreshExpire = 24 * time.Hour

	authService := service.NewAuthService(repository.NewUserRepository(db), nopMailer{}, cfg)
	c := NewAuthController(authService)

	router := gin.New()
	router.POST("/api/auth/login", c.Login)
	return router, db
}

func postLogin(t *testing.T, router *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(gin.H{"email": email, "password": password})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginDisabledAccountUnauthorized(t *testing.T) {
	router, db := newLoginRouter(t)
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Name:     "Disabled",
		Email:    "disabled@test.io",
		Password: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)
	// IsActive 带默认值，建完再显式停用
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	// 停用账号与错误凭据一样按 401 处理
	w := postLogin(t, router, "disabled@test.io", "password123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postLogin(t, router, "disabled@test.io", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
