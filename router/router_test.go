package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"suito/config"
	"suito/database"
	"suito/models"
	"suito/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEngine(t *testing.T, mutate func(cfg *config.Config)) http.Handler {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:      ":0",
			Mode:      "test",
			Name:      "suito-sync",
			MaxBodyMB: 1,
		},
		RateLimit: config.RateLimitConfig{SyncPerMinute: 100},
	}
	if mutate != nil {
		mutate(cfg)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := database.NewJSONStore(filepath.Join(t.TempDir(), "suito-data.json"))
	return SetupRouter(cfg, service.NewLedgerService(store, logger), logger)
}

func TestSetupRouter_Routes(t *testing.T) {
	r := setupTestEngine(t, nil)

	cases := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{"GET", "/api/ping", "", 200},
		{"GET", "/api/sync", "", 200},
		{"POST", "/api/sync", `{"dailyRecords":[],"transactions":[]}`, 200},
		{"POST", "/api/import", `{}`, 200},
		{"POST", "/api/admin/save", `{"dailyRecords":[],"transactions":[]}`, 200},
		{"GET", "/api/export/json", "", 200},
		{"GET", "/api/export/xlsx", "", 200},
		{"GET", "/api/unknown", "", 404},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.code, w.Code, "%s %s: %s", tc.method, tc.path, w.Body.String())
	}
}

func TestSetupRouter_CORS(t *testing.T) {
	r := setupTestEngine(t, nil)

	req := httptest.NewRequest("OPTIONS", "/api/sync", nil)
	req.Header.Set("Origin", "http://192.168.1.20:8080")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/api/ping", nil)
	req.Header.Set("Origin", "null")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_BodyLimit(t *testing.T) {
	r := setupTestEngine(t, nil)

	image := "data:image/png;base64," + strings.Repeat("A", 2<<20)
	payload := map[string]interface{}{
		"dailyRecords": []interface{}{},
		"transactions": []interface{}{map[string]interface{}{
			"id": "t1", "type": "expense", "amount": 1, "date": "2024-01-01",
			"createdAt": "2024-01-01T08:00:00.000Z", "imageData": image,
		}},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/sync", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSetupRouter_RateLimitOnWrites(t *testing.T) {
	r := setupTestEngine(t, func(cfg *config.Config) {
		cfg.RateLimit.SyncPerMinute = 1
	})

	push := func() int {
		req := httptest.NewRequest("POST", "/api/sync", strings.NewReader(`{"dailyRecords":[],"transactions":[]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, 200, push())
	assert.Equal(t, http.StatusTooManyRequests, push())

	// 读接口不受限
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/ping", nil))
		assert.Equal(t, 200, w.Code)

		var ping models.PingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ping))
		assert.Equal(t, "suito-sync", ping.Server)
	}
}
