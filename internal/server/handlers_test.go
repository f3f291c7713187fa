package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"menuboard/internal/config"
	"menuboard/internal/models"
	"menuboard/internal/repository"
	"menuboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testAdminToken = "test-admin-token"

func setupHandlerTest(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Config{},
		&models.Dish{},
		&models.Chef{},
		&models.Post{},
		&models.Comment{},
	))
	require.NoError(t, db.Create(&models.Config{ID: 1, Title: "Test Board", AutoDate: true}).Error)

	cfg := &config.Config{
		Port:        "3010",
		Env:         "test",
		AdminToken:  testAdminToken,
		DBPath:      ":memory:",
		StaticDir:   t.TempDir(),
		PublicDir:   t.TempDir(),
		UploadMaxMB: 1,
	}

	configRepo := repository.NewConfigRepository(db)
	dishRepo := repository.NewDishRepository(db)
	chefRepo := repository.NewChefRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		configRepo:  configRepo,
		dishRepo:    dishRepo,
		chefRepo:    chefRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
	s.boardService = service.NewBoardService(configRepo, dishRepo, chefRepo, nil)
	s.forumService = service.NewForumService(postRepo, commentRepo, nil)
	s.imageService = service.NewImageService(cfg.StaticDir, cfg.UploadMaxMB)
	s.qrService = service.NewQRCodeService()

	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Token": testAdminToken}
}
