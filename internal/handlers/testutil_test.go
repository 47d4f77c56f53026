package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/otp"
	"github.com/BruksfildServices01/salon-booking/internal/token"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func newTestIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", "test-refresh-secret", time.Hour, 7*24*time.Hour)
}

// mockMailer records sent codes and can be told to fail.
type mockMailer struct {
	fail  bool
	codes []string
}

func (m *mockMailer) SendOTP(to, code string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.codes = append(m.codes, code)
	return nil
}

func (m *mockMailer) SendPasswordReset(to, code string) error {
	return m.SendOTP(to, code)
}

func (m *mockMailer) lastCode() string {
	if len(m.codes) == 0 {
		return ""
	}
	return m.codes[len(m.codes)-1]
}

func newAuthHandler(db *gorm.DB, mail *mockMailer) *AuthHandler {
	return NewAuthHandler(db, newTestIssuer(), mail, otp.NewThrottle(nil))
}

// asUser loads the user named by the X-User-ID request header into the
// context, standing in for the real auth middleware.
func asUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.GetHeader("X-User-ID"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		var u models.User
		if err := db.First(&u, id).Error; err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(middleware.ContextUser, &u)
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	u := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}
