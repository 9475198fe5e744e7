package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/scriptvault/backend/internal/config"
	"github.com/scriptvault/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database migrated with the
// full schema. Each test gets its own named shared-cache database so the
// connection pool sees one store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Script{}, &models.SystemLog{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:     "test-secret-key-for-testing",
		ExpireHour: 168,
	}
}

// registerUser creates an account through the real registration path and
// returns the created user.
func registerUser(t *testing.T, auth *AuthService, name, email string) *models.User {
	t.Helper()

	result, err := auth.Register(&RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register(%q) error = %v", email, err)
	}
	return result.User
}
