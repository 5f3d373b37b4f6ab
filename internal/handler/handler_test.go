package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database migrated with every model. The
// pool is pinned to one connection so :memory: is shared across queries.
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

	if err := db.AutoMigrate(
		&models.User{},
		&models.AssetClass{},
		&models.Transaction{},
		&models.PlatformSetting{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUserAndClass(t *testing.T, db *gorm.DB) (*models.User, *models.AssetClass) {
	t.Helper()

	user := &models.User{Username: "tester", PasswordHash: "x", Role: models.RoleUser}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	class := &models.AssetClass{Name: "Ações", Color: "#6366f1", IsActive: true}
	if err := db.Create(class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return user, class
}

// testRequest builds a gin context the way the auth middleware leaves it:
// JSON body bound, currentUser set, :id param optional.
func testRequest(t *testing.T, user *models.User, method, body, id string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	if user != nil {
		c.Set("currentUser", user)
	}
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}
	return c, w
}
