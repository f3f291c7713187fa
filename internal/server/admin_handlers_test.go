package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"menuboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutes_RequireToken(t *testing.T) {
	t.Parallel()

	_, app, _ := setupHandlerTest(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/config"},
		{http.MethodGet, "/api/admin/dishes"},
		{http.MethodGet, "/api/admin/chefs"},
		{http.MethodPost, "/api/upload"},
	}

	for _, p := range paths {
		resp, _ := doJSON(t, app, p.method, p.path, nil, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", p.method, p.path)

		resp, _ = doJSON(t, app, p.method, p.path, nil,
			map[string]string{"X-Admin-Token": "wrong"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s wrong token", p.method, p.path)
	}
}

func TestAdminConfigRoundtrip(t *testing.T) {
	t.Parallel()

	_, app, _ := setupHandlerTest(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/admin/config", nil, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cfg := body["config"].(map[string]any)
	assert.Equal(t, "Test Board", cfg["title"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/config",
		map[string]any{"title": "Friday Banquet", "date_location": "2025-06-06 Hall C", "auto_date": false},
		adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/admin/config", nil, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cfg = body["config"].(map[string]any)
	assert.Equal(t, "Friday Banquet", cfg["title"])
	assert.Equal(t, "2025-06-06 Hall C", cfg["date_location"])
	assert.Equal(t, false, cfg["auto_date"])

	// Empty title is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/config",
		map[string]any{"title": ""}, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminDishCRUD(t *testing.T) {
	t.Parallel()

	_, app, _ := setupHandlerTest(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/dishes",
		map[string]any{"name": "Braised Pork", "chef": "Chen"}, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	id := int(body["id"].(float64))
	require.NotZero(t, id)

	resp, body = doJSON(t, app, http.MethodGet, "/api/admin/dishes", nil, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["dishes"].([]any), 1)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/admin/dishes/1",
		map[string]any{"name": "Braised Pork Belly", "chef": "Chen", "up_votes": 3, "down_votes": 0},
		adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/admin/dishes", nil, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dish := body["dishes"].([]any)[0].(map[string]any)
	assert.Equal(t, "Braised Pork Belly", dish["name"])
	assert.Equal(t, float64(3), dish["up_votes"])

	resp, _ = doJSON(t, app, http.MethodPut, "/api/admin/dishes/9999",
		map[string]any{"name": "Ghost Dish", "chef": "Nobody"}, adminHeaders())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/dishes",
		map[string]any{"chef": "Chen"}, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/admin/dishes/1", nil, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/admin/dishes", nil, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["dishes"].([]any), 0)
}

func TestAdminChefCreate_Defaults(t *testing.T) {
	t.Parallel()

	_, app, _ := setupHandlerTest(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/chefs",
		map[string]any{"name": "Liu", "role": "Sous Chef"}, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/admin/chefs", nil, adminHeaders())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	chef := body["chefs"].([]any)[0].(map[string]any)
	assert.Equal(t, models.DefaultChefPhoto, chef["photo"])
	assert.Equal(t, float64(99), chef["daily_rank"])
	assert.Equal(t, float64(99), chef["monthly_rank"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/chefs",
		map[string]any{"name": "Nameless"}, adminHeaders())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func uploadRequest(t *testing.T, content []byte, token string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}
	return req
}

func TestUploadImage(t *testing.T) {
	t.Parallel()

	_, app, _ := setupHandlerTest(t)

	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	t.Run("accepts a png and returns its served path", func(t *testing.T) {
		resp, err := app.Test(uploadRequest(t, pngBuf.Bytes(), testAdminToken))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var stored struct {
			URL      string `json:"url"`
			Filename string `json:"filename"`
			Size     int64  `json:"size"`
		}
		require.NoError(t, json.Unmarshal(raw, &stored))
		assert.Contains(t, stored.URL, "static/img-")
		assert.Equal(t, int64(pngBuf.Len()), stored.Size)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		resp, err := app.Test(uploadRequest(t, []byte("not an image"), testAdminToken))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects a missing file field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
		req.Header.Set("X-Admin-Token", testAdminToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
