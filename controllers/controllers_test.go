package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/RushabhMehta2005/stores-api/config"
	"github.com/RushabhMehta2005/stores-api/metrics"
	"github.com/RushabhMehta2005/stores-api/models"
	"github.com/RushabhMehta2005/stores-api/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	h      *Handler
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			SecretKey:    "test-secret-key-for-jwt-signing",
			TokenTTL:     time.Hour,
			HeaderPrefix: "JWT",
			BcryptCost:   bcrypt.MinCost,
			HashWorkers:  1,
			UserCacheTTL: time.Minute,
		},
	}
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	h := NewHandler(testutil.NewDB(t), cfg, metrics.New())
	t.Cleanup(h.Close)
	return &testServer{t: t, router: NewRouter(h), h: h}
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithConfig(t, testConfig())
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) form(method, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testServer) json(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return s.do(req)
}

func (s *testServer) get(path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return s.do(req)
}

// accessToken registers user "test" and returns a ready Authorization value.
func (s *testServer) accessToken() string {
	s.t.Helper()
	_, err := s.h.Auth.Register(context.Background(), "test", "1234")
	require.NoError(s.t, err)

	w := s.json(http.MethodPost, "/auth", `{"username":"test","password":"1234"}`)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp tokenResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.AccessToken)
	return "JWT " + resp.AccessToken
}

func (s *testServer) seedStore(name string) *models.Store {
	s.t.Helper()
	store := &models.Store{Name: name}
	require.NoError(s.t, s.h.Stores.Save(context.Background(), store))
	return store
}

func (s *testServer) seedItem(name string, price float64, storeID uint) {
	s.t.Helper()
	require.NoError(s.t, s.h.Items.Save(context.Background(),
		&models.Item{Name: name, Price: price, StoreID: storeID}))
}

func itemForm(price string, storeID string) url.Values {
	return url.Values{"price": {price}, "store_id": {storeID}}
}
