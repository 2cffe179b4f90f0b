package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/taskhive/taskhive/pkg/audit"
	"github.com/taskhive/taskhive/pkg/auth"
)

func newTestServer(t *testing.T) (chi.Router, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(db, logger, auth.Config{
		Secret:   []byte("0123456789abcdef0123456789abcdef"),
		TokenTTL: 24 * time.Hour,
	})
	require.NoError(t, srv.Init())
	return srv.MountRoutes(), srv
}

type apiClient struct {
	t      *testing.T
	router chi.Router
	token  string
}

func (c *apiClient) do(method, path string, payload any) *httptest.ResponseRecorder {
	c.t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func (c *apiClient) decode(rec *httptest.ResponseRecorder, out any) {
	c.t.Helper()
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), out))
}

// signup registers a user and returns an authenticated client.
func signup(t *testing.T, router chi.Router, email string) *apiClient {
	t.Helper()

	c := &apiClient{t: t, router: router}
	rec := c.do(http.MethodPost, "/auth/register", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	c.decode(rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	c.token = resp.AccessToken
	return c
}

func createTask(t *testing.T, c *apiClient, title string) uint64 {
	t.Helper()

	rec := c.do(http.MethodPost, "/tasks", map[string]string{"title": title})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var task struct {
		ID uint64 `json:"id"`
	}
	c.decode(rec, &task)
	return task.ID
}

func taskIDs(t *testing.T, c *apiClient) []uint64 {
	t.Helper()

	rec := c.do(http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tasks []struct {
			ID uint64 `json:"id"`
		} `json:"tasks"`
	}
	c.decode(rec, &resp)
	ids := make([]uint64, 0, len(resp.Tasks))
	for _, task := range resp.Tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestTwoUsersSeeOnlyTheirOwnTasks(t *testing.T) {
	router, _ := newTestServer(t)

	alice := signup(t, router, "alice@example.com")
	bob := signup(t, router, "bob@example.com")

	aliceTask := createTask(t, alice, "alice task")
	bobTask := createTask(t, bob, "bob task")

	assert.Equal(t, []uint64{aliceTask}, taskIDs(t, alice))
	assert.Equal(t, []uint64{bobTask}, taskIDs(t, bob))
}

func TestCrossUserAccessDenied(t *testing.T) {
	router, _ := newTestServer(t)

	alice := signup(t, router, "alice@example.com")
	bob := signup(t, router, "bob@example.com")
	bobTask := createTask(t, bob, "bob task")
	path := "/tasks/" + itoa(bobTask)

	for _, tt := range []struct {
		method  string
		payload any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]string{"title": "stolen"}},
		{http.MethodDelete, nil},
	} {
		rec := alice.do(tt.method, path, tt.payload)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tt.method, path)
	}

	// Bob's task is untouched.
	rec := bob.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var task struct {
		Title string `json:"title"`
	}
	bob.decode(rec, &task)
	assert.Equal(t, "bob task", task.Title)
}

func TestMissingTaskIs404ForEveryone(t *testing.T) {
	router, _ := newTestServer(t)
	alice := signup(t, router, "alice@example.com")

	rec := alice.do(http.MethodGet, "/tasks/424242", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	router, _ := newTestServer(t)

	anon := &apiClient{t: t, router: router}
	for _, tt := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodGet, "/tasks/1"},
		{http.MethodPut, "/tasks/1"},
		{http.MethodDelete, "/tasks/1"},
	} {
		rec := anon.do(tt.method, tt.path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.path)

		var body struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		anon.decode(rec, &body)
		assert.Equal(t, "Authentication required", body.Error.Message)
	}
}

func TestGarbledTokenRejected(t *testing.T) {
	router, _ := newTestServer(t)

	c := &apiClient{t: t, router: router, token: "garbage.token.value"}
	rec := c.do(http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	c.decode(rec, &body)
	assert.Equal(t, "Invalid token", body.Error.Message)
}

func TestLoginThenAccess(t *testing.T) {
	router, _ := newTestServer(t)

	alice := signup(t, router, "alice@example.com")
	createTask(t, alice, "persisted")

	// Fresh login, fresh token, same data.
	fresh := &apiClient{t: t, router: router}
	rec := fresh.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	fresh.decode(rec, &resp)
	fresh.token = resp.AccessToken

	assert.Len(t, taskIDs(t, fresh), 1)
}

func TestForbiddenAccessIsAudited(t *testing.T) {
	router, srv := newTestServer(t)

	alice := signup(t, router, "alice@example.com")
	bob := signup(t, router, "bob@example.com")
	bobTask := createTask(t, bob, "bob task")

	rec := alice.do(http.MethodGet, "/tasks/"+itoa(bobTask), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Alice registered first, so she is user 1 and bob is user 2.
	events, err := srv.auditStore.ListByActor("1", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "forbidden", events[0].Kind)
	assert.Equal(t, "task", events[0].ResourceType)
	assert.Equal(t, itoa(bobTask), events[0].ResourceID)
	assert.Equal(t, "2", events[0].OwnerID)
	assert.NotEmpty(t, events[0].RequestID)
}

func TestAuditDisabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(db, logger, auth.Config{
		Secret:   []byte("0123456789abcdef0123456789abcdef"),
		TokenTTL: 24 * time.Hour,
	}, WithAuditConfig(&audit.Config{Enabled: false}))
	require.NoError(t, srv.Init())
	router := srv.MountRoutes()

	assert.Nil(t, srv.auditStore)

	// Denials still work without a store behind them.
	anon := &apiClient{t: t, router: router}
	rec := anon.do(http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestServer(t)
	c := &apiClient{t: t, router: router}

	rec := c.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var root map[string]string
	c.decode(rec, &root)
	assert.Equal(t, "healthy", root["status"])
	assert.Equal(t, Version, root["version"])

	for _, path := range []string{"/healthz", "/livez", "/readyz"} {
		rec := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
