package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"catalog/internal/config"
	"catalog/internal/validation"
	"catalog/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Testing)
	os.Exit(m.Run())
}

func testConfig(driver string) *config.Config {
	return &config.Config{
		Env:                "testing",
		Port:               ":0",
		StoreDriver:        driver,
		JWTSecret:          "test_jwt_secret",
		AdminUsername:      "admin",
		SellerEmailDomains: validation.DefaultSellerDomains,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestHealth(t *testing.T) {
	cfg := testConfig(config.DriverJSON)
	cfg.DataFile = filepath.Join(t.TempDir(), "products.json")
	a := newTestApp(t, cfg)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, config.DriverJSON, body["store"])
	assert.Equal(t, cfg.DataFile, body["data_path"])
	assert.Equal(t, false, body["events"])
}

func TestNewApp_GuardsMutationsWhenAdminPasswordSet(t *testing.T) {
	cfg := testConfig(config.DriverMemory)
	cfg.AdminPassword = "s3cret"
	a := newTestApp(t, cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.Fiber.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	login, _ := json.Marshal(map[string]string{"username": "admin", "password": "s3cret"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	resp, err = a.Fiber.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewApp_OpenModeAllowsMutations(t *testing.T) {
	a := newTestApp(t, testConfig(config.DriverMemory))

	payload, _ := json.Marshal(map[string]any{
		"sku":           "OPEN-00001",
		"name":          "Mouse",
		"category":      "Peripherals",
		"price":         20.0,
		"currency":      "USD",
		"stock":         1,
		"dimensions_cm": map[string]any{"length": 1.0, "width": 1.0, "height": 1.0},
		"seller": map[string]any{
			"seller_id": uuid.NewString(),
			"name":      "Gadget Hub",
			"email":     "sales@shop.com",
			"website":   "https://shop.com",
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.Fiber.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestNewApp_SQLiteStore(t *testing.T) {
	cfg := testConfig(config.DriverSQLite)
	cfg.DatabaseDSN = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	cfg.AdminPassword = "s3cret"
	a := newTestApp(t, cfg)

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewApp_BadDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	cfg := testConfig(config.DriverJSON)
	cfg.DataFile = path
	_, err := NewApp(cfg)
	assert.Error(t, err)
}
