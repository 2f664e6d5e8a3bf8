package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRouter(t *testing.T, optional bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		_ = sqlDB.Close()
	})

	identity := services.NewIdentityService("")
	mw := RequireAuth(identity)
	if optional {
		mw = OptionalAuth(identity)
	}

	r := gin.New()
	r.GET("/ping", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID")})
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	r := setupRouter(t, false)

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthAcceptsOpaqueToken(t *testing.T) {
	r := setupRouter(t, false)

	w := doGet(r, "Bearer sub-9:tail")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sub-9")
}

func TestRequireAuthRejectsUnknownScheme(t *testing.T) {
	r := setupRouter(t, false)

	w := doGet(r, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	r := setupRouter(t, true)

	w := doGet(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthStillRejectsInvalidCredential(t *testing.T) {
	r := setupRouter(t, true)

	// A present-but-broken credential is an error, not anonymous access.
	w := doGet(r, "Bearer :noleadingsubject")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
