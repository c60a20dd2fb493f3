package controller

import (
	"corpready_backend/internal/config"
	"corpready_backend/internal/model"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/service"
	"corpready_backend/pkg/database"
	"corpready_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
}

func newVerifyRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Certificate.CacheDir = t.TempDir()
	certService := service.NewCertificateService(
		repository.NewCertificateRepository(db),
		repository.NewUserRepository(db),
		cfg,
	)
	c := NewCertificateController(certService)

	router := gin.New()
	router.GET("/api/certificates/verify/:code", c.Verify)
	return router, db
}

func TestVerifyEndpointKnownCode(t *testing.T) {
	router, db := newVerifyRouter(t)
	user := &model.User{Name: "Ada Wong", Email: "ada@test.io", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	cert := &model.Certificate{
		UserID:          user.ID,
		CourseID:        1,
		CourseName:      "Go Basics",
		CertificateCode: "CR-AAAA-BBBB-CCCC",
		IssuedAt:        time.Now(),
	}
	require.NoError(t, db.Create(cert).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/certificates/verify/CR-AAAA-BBBB-CCCC", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body.Data["valid"])
	assert.Equal(t, "CR-AAAA-BBBB-CCCC", body.Data["certificateCode"])
	assert.Equal(t, "Go Basics", body.Data["courseName"])
	assert.Equal(t, "Ada Wong", body.Data["holderName"])
	assert.Equal(t, "ada@test.io", body.Data["holderEmail"])
}

func TestVerifyEndpointUnknownCode(t *testing.T) {
	router, _ := newVerifyRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/certificates/verify/CR-DEAD-BEEF-0000", nil)
	router.ServeHTTP(w, req)

	// 404 同样要带 valid:false，调用方不用解析错误文案
	require.Equal(t, http.StatusNotFound, w.Code)
	var body struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Code)
	require.NotNil(t, body.Data)
	assert.Equal(t, false, body.Data["valid"])
}
