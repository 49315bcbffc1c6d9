package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"todoapp/config"
	httpmiddleware "todoapp/internal/delivery/http/middleware"
	"todoapp/internal/delivery/http/response"
	"todoapp/internal/delivery/http/router"
	"todoapp/internal/delivery/http/router/handler"
	"todoapp/internal/infra/auth"
	"todoapp/internal/infra/persistence/memory"
	"todoapp/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Todo: &config.TodoConfig{DefaultCategoryColor: "#3B82F6"},
	}
	cfg.SecretKey.Access = "test-secret"
	cfg.HTTP.MaxRequestBodySize = "100KB"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo:     store.UserRepo(),
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Logger:       logger,
	})
	todoUC := impl.NewTodoService(impl.TodoServiceParams{
		TodoRepo:     store.TodoRepo(),
		CategoryRepo: store.CategoryRepo(),
		Logger:       logger,
	})
	categoryUC := impl.NewCategoryService(impl.CategoryServiceParams{
		TxManager:    store.TransactionManager(),
		CategoryRepo: store.CategoryRepo(),
		Config:       cfg,
		Logger:       logger,
	})

	authMiddleware := httpmiddleware.NewAuthMiddleware(tokens, logger)

	return newEcho(ServerParams{
		Cfg:             cfg,
		Logger:          logger,
		AuthMiddleware:  authMiddleware,
		ErrorMiddleware: httpmiddleware.NewErrorMiddleware(logger),
		RouterParams: router.RouterParams{
			AuthHandler:     handler.NewAuthHandler(handler.AuthHandlerParams{AuthUC: authUC, Logger: logger}),
			TodoHandler:     handler.NewTodoHandler(handler.TodoHandlerParams{TodoUC: todoUC, Logger: logger}),
			CategoryHandler: handler.NewCategoryHandler(handler.CategoryHandlerParams{CategoryUC: categoryUC, Logger: logger}),
			AuthMiddleware:  authMiddleware,
		},
	})
}

type envelope struct {
	response.Response
	Data json.RawMessage `json:"data"`
}

func do(t *testing.T, e *echo.Echo, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return rec.Code, env
}

func login(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()

	code, env := do(t, e, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, code)

	var out handler.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.AccessToken)

	return out.AccessToken
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t)

	code, env := do(t, e, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
}

func TestServer_RegisterLoginGreetLogout(t *testing.T) {
	e := newTestServer(t)

	code, env := do(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ann", "email": "ann@x.io", "password": "pw1",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.NotContains(t, string(env.Data), "pw1")
	assert.NotContains(t, string(env.Data), "password")

	code, env = do(t, e, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ann again", "email": "ann@x.io", "password": "other",
	})
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_EMAIL", env.Error.Code)

	token := login(t, e, "ann@x.io", "pw1")

	code, env = do(t, e, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"name":"Ann"`)

	code, _ = do(t, e, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, e, http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "UNAUTHENTICATED", env.Error.Code)
}

func TestServer_LoginFailuresLookTheSame(t *testing.T) {
	e := newTestServer(t)

	code, _ := do(t, e, http.MethodPost, "/auth/register", "", map[string]string{"email": "ann@x.io", "password": "pw1"})
	require.Equal(t, http.StatusCreated, code)

	unknownCode, unknown := do(t, e, http.MethodPost, "/auth/login", "", map[string]string{"email": "nobody@x.io", "password": "pw1"})
	wrongCode, wrong := do(t, e, http.MethodPost, "/auth/login", "", map[string]string{"email": "ann@x.io", "password": "bad"})
	emptyCode, empty := do(t, e, http.MethodPost, "/auth/login", "", map[string]string{"email": "ann@x.io", "password": ""})

	for _, c := range []int{unknownCode, wrongCode, emptyCode} {
		assert.Equal(t, http.StatusUnauthorized, c)
	}
	assert.Equal(t, unknown.Message, wrong.Message)
	assert.Equal(t, wrong.Message, empty.Message)
	assert.Equal(t, "Invalid email or password", wrong.Message)
	assert.Equal(t, "INVALID_CREDENTIALS", empty.Error.Code)
}

func TestServer_ProtectedRoutesRequireSession(t *testing.T) {
	e := newTestServer(t)

	for _, path := range []string{"/me", "/todos", "/todos/stats", "/categories"} {
		code, env := do(t, e, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
		assert.Equal(t, "UNAUTHENTICATED", env.Error.Code, path)
	}

	code, _ := do(t, e, http.MethodGet, "/todos", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestServer_TodoAndCategoryFlow(t *testing.T) {
	e := newTestServer(t)

	code, _ := do(t, e, http.MethodPost, "/auth/register", "", map[string]string{"email": "ann@x.io", "password": "pw1"})
	require.Equal(t, http.StatusCreated, code)
	token := login(t, e, "ann@x.io", "pw1")

	code, env := do(t, e, http.MethodPost, "/categories", token, map[string]string{"name": "Work"})
	require.Equal(t, http.StatusCreated, code)
	var category handler.CategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &category))
	assert.Equal(t, "#3B82F6", category.Color)

	code, env = do(t, e, http.MethodPost, "/categories", token, map[string]string{"name": "Bad", "color": "blue"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	code, env = do(t, e, http.MethodPost, "/todos", token, map[string]any{
		"title": "Report", "priority": "high", "dueDate": "2025-03-01", "categoryId": category.ID.String(),
	})
	require.Equal(t, http.StatusCreated, code)
	var todo handler.TodoResponse
	require.NoError(t, json.Unmarshal(env.Data, &todo))
	require.NotNil(t, todo.DueDate)
	assert.Equal(t, "2025-03-01", *todo.DueDate)
	require.NotNil(t, todo.Category)
	assert.Equal(t, "Work", todo.Category.Name)

	code, env = do(t, e, http.MethodPost, "/todos", token, map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	code, env = do(t, e, http.MethodPatch, "/todos/"+todo.ID.String()+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &todo))
	assert.True(t, todo.Completed)

	code, env = do(t, e, http.MethodGet, "/todos?status=completed&search=rep", token, nil)
	require.Equal(t, http.StatusOK, code)
	var todos []handler.TodoResponse
	require.NoError(t, json.Unmarshal(env.Data, &todos))
	assert.Len(t, todos, 1)

	code, _ = do(t, e, http.MethodGet, "/todos?status=done", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, e, http.MethodDelete, "/categories/"+category.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, e, http.MethodGet, "/todos", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &todos))
	require.Len(t, todos, 1)
	assert.Nil(t, todos[0].CategoryID)
	assert.Nil(t, todos[0].Category)

	code, env = do(t, e, http.MethodGet, "/todos/stats", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"total":1,"completed":1,"pending":0,"highPriorityPending":0}`, string(env.Data))

	code, env = do(t, e, http.MethodDelete, "/todos/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "TODO_NOT_FOUND", env.Error.Code)
}

func TestServer_TodosAreIsolatedBetweenUsers(t *testing.T) {
	e := newTestServer(t)

	for _, email := range []string{"ann@x.io", "bob@x.io"} {
		code, _ := do(t, e, http.MethodPost, "/auth/register", "", map[string]string{"email": email, "password": "pw"})
		require.Equal(t, http.StatusCreated, code)
	}
	annToken := login(t, e, "ann@x.io", "pw")
	bobToken := login(t, e, "bob@x.io", "pw")

	code, env := do(t, e, http.MethodPost, "/todos", annToken, map[string]any{"title": "Ann's"})
	require.Equal(t, http.StatusCreated, code)
	var todo handler.TodoResponse
	require.NoError(t, json.Unmarshal(env.Data, &todo))

	code, _ = do(t, e, http.MethodPut, "/todos/"+todo.ID.String(), bobToken, map[string]any{"title": "Bob's now"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, e, http.MethodGet, "/todos", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}
