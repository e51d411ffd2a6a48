package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"spotfix-admin/config"
	"spotfix-admin/controllers"
	"spotfix-admin/models"
	"spotfix-admin/store"
	"spotfix-admin/utils"
	"spotfix-admin/views"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		StoreBackend:       config.BackendMemory,
		StoreTimeout:       time.Second,
		RateLimitPrefix:    "status-update",
		StatusUpdateLimit:  30,
		StatusUpdateWin:    time.Minute,
		CORSAllowedOrigins: []string{"*"},
		DateLayout:         utils.DefaultDateLayout,
		DisplayTimezone:    "UTC",
	}
}

func buildRouter(t *testing.T, cfg *config.Config, issues store.IssueStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, err := views.Load(views.Options{DateLayout: cfg.DateLayout, Location: time.UTC})
	require.NoError(t, err)
	return NewRouter(cfg, controllers.NewHandlers(issues, cfg.StoreTimeout), tmpl, nil)
}

func TestRouterServesDashboardFlow(t *testing.T) {
	mem := store.NewMemoryStore()
	id := mem.Insert(models.Issue{Title: "Pothole", Status: "reported", CreatedAt: time.Now()})
	r := buildRouter(t, testConfig(), mem)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/issue/"+id.Hex())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/issue/"+id.Hex(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	form := url.Values{"status": {"resolved"}}
	req := httptest.NewRequest(http.MethodPost, "/issue/"+id.Hex(), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, w.Body.String(), "background-color: #22c55e")
}

func TestRouterPing(t *testing.T) {
	r := buildRouter(t, testConfig(), store.NewMemoryStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterOperatorGate(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "gate-secret"
	r := buildRouter(t, cfg, store.NewMemoryStore())

	token, err := utils.GenerateOperatorToken(cfg.JWTSecret, "ops@city.gov", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		path           string
		token          string
		expectedStatus int
	}{
		{name: "dashboard without token", path: "/", expectedStatus: http.StatusUnauthorized},
		{name: "dashboard with token", path: "/", token: token, expectedStatus: http.StatusOK},
		{name: "summary without token", path: "/api/summary", expectedStatus: http.StatusUnauthorized},
		{name: "summary with token", path: "/api/summary", token: token, expectedStatus: http.StatusOK},
		{name: "ping stays public", path: "/ping", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouterOperatorGateAPIRespondsJSON(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = "gate-secret"
	r := buildRouter(t, cfg, store.NewMemoryStore())

	tests := []struct {
		name          string
		authorization string
		expectedError string
	}{
		{name: "missing token", expectedError: "No authorization token provided"},
		{name: "bad token", authorization: "Bearer not-a-jwt", expectedError: "Invalid authorization token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body["error"])
		})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestSummaryCORS(t *testing.T) {
	t.Run("wildcard", func(t *testing.T) {
		r := buildRouter(t, testConfig(), store.NewMemoryStore())

		req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
		req.Header.Set("Origin", "https://portal.city.gov")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		cfg := testConfig()
		cfg.CORSAllowedOrigins = []string{"https://portal.city.gov"}
		r := buildRouter(t, cfg, store.NewMemoryStore())

		req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
		req.Header.Set("Origin", "https://portal.city.gov")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://portal.city.gov", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/api/summary", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("preflight", func(t *testing.T) {
		tests := []struct {
			name    string
			origins []string
			secret  string
			allowed string
		}{
			{name: "wildcard", origins: []string{"*"}, allowed: "*"},
			{name: "allow list behind operator gate", origins: []string{"https://portal.city.gov"}, secret: "gate-secret", allowed: "https://portal.city.gov"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := testConfig()
				cfg.CORSAllowedOrigins = tt.origins
				cfg.JWTSecret = tt.secret
				r := buildRouter(t, cfg, store.NewMemoryStore())

				req := httptest.NewRequest(http.MethodOptions, "/api/summary", nil)
				req.Header.Set("Origin", "https://portal.city.gov")
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
				req.Header.Set("Access-Control-Request-Headers", "authorization")
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				assert.Equal(t, http.StatusNoContent, w.Code)
				assert.Equal(t, tt.allowed, w.Header().Get("Access-Control-Allow-Origin"))
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
				assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
			})
		}
	})
}
