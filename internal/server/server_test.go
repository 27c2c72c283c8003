package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/config"
)

func newTestServer() *Server {
	return &Server{}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["engine_version"])
}

func TestCreateAnalysis_InvalidBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()

	s.handleCreateAnalysis(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAnalysis_JDTextAndURLRejected(t *testing.T) {
	s := newTestServer()

	body, err := json.Marshal(map[string]string{
		"resume_text": "resume",
		"jd_text":     "text",
		"jd_url":      "https://example.com/job",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	s.handleCreateAnalysis(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mutually exclusive")
}

func TestGetAnalysis_InvalidID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/analyses/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	s.handleGetAnalysis(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAnalyses_InvalidLimit(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/analyses?limit=0", nil)
	w := httptest.NewRecorder()

	s.handleListAnalyses(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func newTestJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
}

func TestLogin_WrongCredentials(t *testing.T) {
	hash, err := config.HashPassword("right-password", 10)
	require.NoError(t, err)

	handler := NewAuthHandler(&config.OperatorConfig{
		Email:        "ops@example.com",
		PasswordHash: hash,
		BcryptCost:   10,
	}, newTestJWTService())

	body, err := json.Marshal(map[string]string{"email": "ops@example.com", "password": "wrong"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_IssuesValidToken(t *testing.T) {
	hash, err := config.HashPassword("right-password", 10)
	require.NoError(t, err)

	jwtService := newTestJWTService()
	handler := NewAuthHandler(&config.OperatorConfig{
		Email:        "ops@example.com",
		PasswordHash: hash,
		BcryptCost:   10,
	}, jwtService)

	body, err := json.Marshal(map[string]string{"email": "ops@example.com", "password": "right-password"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	claims, err := jwtService.ValidateToken(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.GetSubject())
}

func TestLogin_MalformedBody(t *testing.T) {
	handler := NewAuthHandler(&config.OperatorConfig{Email: "ops@example.com"}, newTestJWTService())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("nope"))
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
