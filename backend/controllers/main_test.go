package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asceticism/backend/config"
	"asceticism/backend/routes"
	"asceticism/backend/store"
	"asceticism/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store *store.SyncedStore
	cfg   *config.Config
}

// newEnv wires the full app against an in-memory sqlite database. The journal
// quiet period is set far out so tests observe writes through the synced
// store's overlay, never through flush timing.
func newEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{JWTSecret: "testsecret", ServerPort: "8080"}
	logger := log.New(io.Discard, "", 0)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// Every pooled connection would get its own :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, utils.Migrate(db))

	st := store.NewSyncedStore(store.NewGormStore(db), logger)
	st.Delay = time.Minute

	app := fiber.New()
	routes.SetupRoutes(app, db, st, cfg, logger)

	return &testEnv{app: app, db: db, store: st, cfg: cfg}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// data unwraps the success envelope.
func data(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	result := decode(t, resp)
	d, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", result)
	return d
}

// register creates a user through the API and returns its token and id.
func (e *testEnv) register(t *testing.T, email string) (token string, userID uint) {
	t.Helper()

	resp := e.request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	token, _ = result["token"].(string)
	require.NotEmpty(t, token)
	user := result["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}
