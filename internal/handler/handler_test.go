package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamescout/backend/internal/auth"
	"gamescout/backend/internal/config"
	"gamescout/backend/internal/database"
	"gamescout/backend/internal/models"
	"gamescout/backend/internal/rawg"
	"gamescout/backend/internal/recommend"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type stubFetcher struct {
	results []rawg.GameResult
	err     error
	calls   int
}

func (s *stubFetcher) SearchGames(ctx context.Context, platform, genre string, pageSize int) ([]rawg.GameResult, error) {
	s.calls++
	return s.results, s.err
}

// setupTest wires a fresh in-memory database, config and router for a test.
func setupTest(t *testing.T, fetcher recommend.Fetcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	database.Migrate(db)
	database.DB = db

	if fetcher == nil {
		fetcher = &stubFetcher{}
	}
	Recommender = recommend.NewService(db, fetcher)

	router := gin.New()
	router.GET("/", Index)
	router.POST("/signup", Signup)
	router.POST("/login", Login)
	router.POST("/logout", Logout)
	router.GET("/survey", GetSurvey)
	router.POST("/survey", PostSurvey)
	router.GET("/results", auth.OptionalAuthMiddleware(), GetResults)
	router.GET("/my-lists", auth.OptionalAuthMiddleware(), GetMyLists)
	router.GET("/users/me", auth.AuthMiddleware(), GetMe)
	router.GET("/admin/users", auth.AuthMiddleware(), auth.AdminMiddleware(), ListUsers)
	router.DELETE("/admin/cache", auth.AuthMiddleware(), auth.AdminMiddleware(), PurgeCache)
	return router
}

func doJSON(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// createUser inserts a user directly and returns its ID.
func createUser(t *testing.T, username, password, role string) uint {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{Username: username, PasswordHash: string(hash), Role: role}
	require.NoError(t, database.DB.Create(&user).Error)
	return user.ID
}

// loginToken runs the login handler and extracts the returned token.
func loginToken(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/login",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
