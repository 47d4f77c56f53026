package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/salon-booking/internal/db"
	"github.com/BruksfildServices01/salon-booking/internal/models"
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

func newIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", "test-refresh-secret", time.Hour, 7*24*time.Hour)
}

func protectedRouter(db *gorm.DB, issuer *token.Issuer, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := append([]gin.HandlerFunc{Authenticate(issuer, db)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
	})
	r.GET("/protected", chain...)
	return r
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	r := protectedRouter(newTestDB(t), newIssuer())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing_authorization_header")
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	r := protectedRouter(newTestDB(t), newIssuer())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_authorization_header")
}

func TestAuthenticate_BadToken(t *testing.T) {
	r := protectedRouter(newTestDB(t), newIssuer())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestAuthenticate_ForeignSecret(t *testing.T) {
	db := newTestDB(t)
	issuer := newIssuer()
	r := protectedRouter(db, issuer)

	forged, err := token.NewIssuer("another-secret", "x", time.Hour, time.Hour).IssueAccess(1)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	db := newTestDB(t)
	issuer := newIssuer()
	r := protectedRouter(db, issuer)

	// token references a user that no longer exists
	tok, err := issuer.IssueAccess(999)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user_not_found")
}

func TestAuthenticate_AttachesUser(t *testing.T) {
	db := newTestDB(t)
	issuer := newIssuer()

	user := models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&user).Error)

	r := protectedRouter(db, issuer)

	tok, err := issuer.IssueAccess(user.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "client")
}

func TestAuthorize_RoleGate(t *testing.T) {
	db := newTestDB(t)
	issuer := newIssuer()

	client := models.User{Name: "Bia", Email: "bia@example.com", PasswordHash: "x", Role: models.RoleClient}
	admin := models.User{Name: "Cid", Email: "cid@example.com", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&admin).Error)

	r := protectedRouter(db, issuer, Authorize(models.RoleAdmin))

	clientTok, _ := issuer.IssueAccess(client.ID)
	adminTok, _ := issuer.IssueAccess(admin.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+clientTok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
