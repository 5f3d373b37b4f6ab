package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.PlatformSetting{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func authedGet(t *testing.T, db *gorm.DB, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	token, err := util.GenerateToken(testSecret, user.ID, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret, db))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MaintenanceMode(t *testing.T) {
	db := newTestDB(t)

	normal := &models.User{Username: "normal", PasswordHash: "x", Role: models.RoleUser}
	admin := &models.User{Username: "boss", PasswordHash: "x", Role: models.RoleAdmin}
	for _, u := range []*models.User{normal, admin} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	if err := db.Create(&models.PlatformSetting{Key: models.SettingMaintenanceMode, Value: "true"}).Error; err != nil {
		t.Fatalf("seed setting: %v", err)
	}

	if w := authedGet(t, db, normal); w.Code != http.StatusForbidden {
		t.Errorf("normal user status = %d, want %d during maintenance", w.Code, http.StatusForbidden)
	}
	if w := authedGet(t, db, admin); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want %d during maintenance", w.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_BannedUserBlocked(t *testing.T) {
	db := newTestDB(t)

	banned := &models.User{Username: "banned", PasswordHash: "x", Role: models.RoleUser, IsBanned: true}
	if err := db.Create(banned).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	// a valid token does not survive a ban
	if w := authedGet(t, db, banned); w.Code != http.StatusForbidden {
		t.Errorf("banned user status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
