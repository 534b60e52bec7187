package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/olegk/users-api/internal/adapter/handler"
	pgRepo "github.com/olegk/users-api/internal/adapter/repository/postgres"
	"github.com/olegk/users-api/internal/infrastructure/database"
	"github.com/olegk/users-api/internal/infrastructure/middleware"
	"github.com/olegk/users-api/internal/infrastructure/server"
	"github.com/olegk/users-api/internal/usecase/avatar"
	"github.com/olegk/users-api/internal/usecase/user"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	testAuthToken  = "test-auth-token-for-e2e"
)

type TestApp struct {
	Server     *httptest.Server
	Pool       *pgxpool.Pool
	Container  testcontainers.Container
	BaseURL    string
	httpClient *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	migrationsPath := getMigrationsPath()
	err = database.RunMigrations(ctx, pool, migrationsPath)
	require.NoError(t, err)

	userRepo := pgRepo.NewUserRepo(pool)

	// Stub storage for e2e tests (avoids S3 dependency)
	stubStorage := &stubObjectStorage{}
	stubProcessor := &stubImageProcessor{}

	userSvc := user.NewService(userRepo)
	avatarSvc := avatar.NewService(userRepo, stubStorage, stubProcessor)

	userHandler := handler.NewUserHandler(userSvc)
	avatarHandler := handler.NewAvatarHandler(avatarSvc)

	apiKey := middleware.NewAPIKeyMiddleware(testAuthToken)

	logger, _ := zap.NewDevelopment()
	router := server.NewRouter(server.RouterConfig{
		UserHandler:   userHandler,
		AvatarHandler: avatarHandler,
		APIKey:        apiKey,
		Logger:        logger,
		Environment:   "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:    ts,
		Pool:      pool,
		Container: pgContainer,
		BaseURL:   ts.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) truncate(t *testing.T) {
	t.Helper()
	_, err := app.Pool.Exec(context.Background(), "TRUNCATE TABLE users CASCADE")
	require.NoError(t, err)
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, app.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) put(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPut, path, body, headers)
}

func (app *TestApp) delete(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodDelete, path, nil, headers)
}

func (app *TestApp) options(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodOptions, path, nil, headers)
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

func authHeader() map[string]string {
	return map[string]string{
		middleware.AuthTokenHeader: testAuthToken,
	}
}

// Stub implementations for storage (to avoid S3 dependency in e2e tests)

type stubObjectStorage struct{}

func (s *stubObjectStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error {
	return nil
}

func (s *stubObjectStorage) Delete(ctx context.Context, key string) error {
	return nil
}

func (s *stubObjectStorage) GetURL(key string) string {
	return "https://stub-storage.example.com/" + key
}

type stubImageProcessor struct{}

func (s *stubImageProcessor) Process(reader io.Reader) (io.Reader, int64, string, error) {
	data, _ := io.ReadAll(reader)
	return bytes.NewReader(data), int64(len(data)), "image/jpeg", nil
}

// getMigrationsPath returns the absolute path to the migrations directory
func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	return filepath.Join(testDir, "..", "..", "migrations")
}
