package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"skinvault/internal/bootstrap"
	"skinvault/internal/config"
	"skinvault/internal/model"
	"skinvault/internal/session"
)

func newTestApp(t *testing.T, authMode string) *bootstrap.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Collection{}, &model.Skin{}, &model.CatalogEvent{}))

	return &bootstrap.App{
		Config: &config.Config{
			App: config.AppConfig{
				Name:    "skinvault",
				Env:     "test",
				GinMode: gin.TestMode,
			},
			Auth: config.AuthConfig{
				Mode:             authMode,
				JWTSecret:        "test-secret",
				JWTExpireMinute:  5,
				SessionTTLMinute: 5,
				SessionCookie:    "skinvault_session",
			},
		},
		DB:        db,
		Sessions:  session.NewMemoryStore(),
		StartedAt: time.Now(),
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(router *gin.Engine, method, path string, body interface{}, decorate func(*http.Request)) *httptest.ResponseRecorder {
	var payload *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func loginToken(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	rec := doJSON(router, http.MethodPost, "/login", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestRegister(t *testing.T) {
	t.Parallel()
	router := NewRouter(newTestApp(t, config.AuthModeToken))

	rec := doJSON(router, http.MethodPost, "/register", gin.H{"username": "alice", "password": "secret"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPost, "/register", gin.H{"username": "alice", "password": "other"}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(router, http.MethodPost, "/register", gin.H{"username": "", "password": "secret"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/register", gin.H{"username": "bob"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	router := NewRouter(newTestApp(t, config.AuthModeToken))

	rec := doJSON(router, http.MethodPost, "/register", gin.H{"username": "alice", "password": "secret"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPost, "/login", gin.H{"username": "alice", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodPost, "/login", gin.H{"username": "nobody", "password": "secret"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Unauthenticated access to protected routes fails before any mutation runs.
func TestProtectedRoutes_RequireAuth(t *testing.T) {
	t.Parallel()
	app := newTestApp(t, config.AuthModeToken)
	router := NewRouter(app)

	routes := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/colecoes", nil},
		{http.MethodPost, "/colecoes", gin.H{"nome": "Reaver"}},
		{http.MethodPut, "/colecoes/1", gin.H{"nome": "Reaver"}},
		{http.MethodDelete, "/colecoes/1", nil},
		{http.MethodGet, "/skins", nil},
		{http.MethodPost, "/skins", gin.H{"nome": "Blade", "colecao_id": 1}},
		{http.MethodPut, "/skins/1", gin.H{"nome": "Blade", "colecao_id": 1}},
		{http.MethodDelete, "/skins/1", nil},
		{http.MethodGet, "/events", nil},
		{http.MethodPost, "/logout", nil},
	}
	for _, route := range routes {
		rec := doJSON(router, route.method, route.path, route.body, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}

	var collections, skins int64
	require.NoError(t, app.DB.Model(&model.Collection{}).Count(&collections).Error)
	require.NoError(t, app.DB.Model(&model.Skin{}).Count(&skins).Error)
	require.Zero(t, collections)
	require.Zero(t, skins)
}

func TestEndToEnd_TokenMode(t *testing.T) {
	t.Parallel()
	router := NewRouter(newTestApp(t, config.AuthModeToken))

	rec := doJSON(router, http.MethodPost, "/register", gin.H{"username": "alice", "password": "secret"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	token := loginToken(t, router, "alice", "secret")

	rec = doJSON(router, http.MethodPost, "/colecoes", gin.H{"nome": "Select"}, bearer(token))
	require.Equal(t, http.StatusCreated, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var collection model.Collection
	require.NoError(t, json.Unmarshal(env.Data, &collection))
	require.Equal(t, "Select", collection.Name)

	rec = doJSON(router, http.MethodPost, "/skins", gin.H{"nome": "Blade", "colecao_id": collection.ID}, bearer(token))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodGet, fmt.Sprintf("/skins?colecao_id=%d", collection.ID), nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var listings []model.SkinListing
	require.NoError(t, json.Unmarshal(env.Data, &listings))
	require.Len(t, listings, 1)
	require.Equal(t, "Blade", listings[0].Name)
	require.Equal(t, "Select", listings[0].CollectionName)

	rec = doJSON(router, http.MethodGet, "/skins?nome_arma=Blade", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPut, fmt.Sprintf("/colecoes/%d", collection.ID), gin.H{"nome": "Select 2"}, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodDelete, fmt.Sprintf("/colecoes/%d", collection.ID), nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	// The skin row is orphaned now and the join excludes it.
	rec = doJSON(router, http.MethodGet, "/skins", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	listings = nil
	require.NoError(t, json.Unmarshal(env.Data, &listings))
	require.Empty(t, listings)

	// The events listing is reachable; it stays empty without the broker
	// worker feeding catalog_events.
	rec = doJSON(router, http.MethodGet, "/events", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(router, http.MethodGet, "/events?limit=bogus", nil, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Token-mode logout succeeds without invalidating the stateless token.
	rec = doJSON(router, http.MethodPost, "/logout", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(router, http.MethodGet, "/colecoes", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestEndToEnd_SessionMode(t *testing.T) {
	t.Parallel()
	router := NewRouter(newTestApp(t, config.AuthModeSession))

	rec := doJSON(router, http.MethodPost, "/register", gin.H{"username": "alice", "password": "secret"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPost, "/login", gin.H{"username": "alice", "password": "secret"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	sessionCookie := cookies[0]
	require.Equal(t, "skinvault_session", sessionCookie.Name)
	require.True(t, sessionCookie.HttpOnly)

	withCookie := func(req *http.Request) {
		req.AddCookie(sessionCookie)
	}

	rec = doJSON(router, http.MethodPost, "/colecoes", gin.H{"nome": "Select"}, withCookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodGet, "/colecoes", nil, withCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodPost, "/logout", nil, withCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/colecoes", nil, withCookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMode_HTMLRedirect(t *testing.T) {
	t.Parallel()
	router := NewRouter(newTestApp(t, config.AuthModeSession))

	rec := doJSON(router, http.MethodGet, "/colecoes", nil, func(req *http.Request) {
		req.Header.Set("Accept", "text/html")
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestCatalogValidation(t *testing.T) {
	t.Parallel()
	router := NewRouter(newTestApp(t, config.AuthModeToken))

	rec := doJSON(router, http.MethodPost, "/register", gin.H{"username": "alice", "password": "secret"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	token := loginToken(t, router, "alice", "secret")

	rec = doJSON(router, http.MethodPost, "/colecoes", gin.H{"nome": ""}, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/skins", gin.H{"nome": "", "colecao_id": 1}, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/skins", gin.H{"nome": "Blade"}, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPut, "/colecoes/not-a-number", gin.H{"nome": "Reaver"}, bearer(token))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing ids are a silent no-op, not an error.
	rec = doJSON(router, http.MethodPut, "/colecoes/9999", gin.H{"nome": "Ghost"}, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(router, http.MethodDelete, "/skins/9999", nil, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	router := NewRouter(newTestApp(t, config.AuthModeToken))

	rec := doJSON(router, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"sqlite"`)
}
