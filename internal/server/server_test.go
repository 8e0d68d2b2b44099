package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/trust-evaluator/internal/config"
	"github.com/jonathan/trust-evaluator/internal/linkcheck"
	"github.com/jonathan/trust-evaluator/internal/pipeline"
	"github.com/jonathan/trust-evaluator/internal/types"
)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return make([]float32, 768), nil
}

func (s *stubEmbedder) Close() error { return nil }

type stubTrustModel struct{}

func (stubTrustModel) Predict(_ context.Context, _ []float32, _ types.ResumeFeatures) (float64, error) {
	return 0.9, nil
}

type stubChecker struct{}

func (stubChecker) Check(_ context.Context, rawURL string, _ linkcheck.Platform) *types.LinkCheckResult {
	return &types.LinkCheckResult{URL: rawURL, WellFormed: true, Reachable: true}
}

func newTestServer(t *testing.T, embedder *stubEmbedder) *Server {
	t.Helper()
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	evaluator, err := pipeline.New(pipeline.Options{
		Embedder:   embedder,
		TrustModel: stubTrustModel{},
		Checker:    stubChecker{},
	})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	s, err := New(evaluator, &cfg)
	require.NoError(t, err)
	return s
}

func evaluateBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"resume_text":   "Developed and shipped a storefront for a client. Built dashboards and reporting pipelines.",
		"claimed_level": "entry",
		"github_url":    "https://github.com/someone",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &stubEmbedder{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","evaluator_ready":true}`, w.Body.String())
}

func TestEvaluateEndpoint(t *testing.T) {
	s := newTestServer(t, &stubEmbedder{})

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", evaluateBody(t))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result types.EvaluationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.EvaluationID)
	assert.GreaterOrEqual(t, result.FinalScore, 0.0)
	assert.LessOrEqual(t, result.FinalScore, 100.0)
	assert.NotEmpty(t, result.RiskTier)
}

func TestEvaluateEndpointInvalidJSON(t *testing.T) {
	s := newTestServer(t, &stubEmbedder{})

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid JSON body")
}

func TestEvaluateEndpointValidationFailure(t *testing.T) {
	s := newTestServer(t, &stubEmbedder{})

	body, err := json.Marshal(map[string]string{
		"resume_text":   "",
		"claimed_level": "entry",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluateEndpointUpstreamFailure(t *testing.T) {
	s := newTestServer(t, &stubEmbedder{err: errors.New("quota exhausted")})

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", evaluateBody(t))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	// Internal details must not leak to callers.
	assert.NotContains(t, w.Body.String(), "quota exhausted")
}

func TestEvaluateEndpointMethodRouting(t *testing.T) {
	s := newTestServer(t, &stubEmbedder{})

	req := httptest.NewRequest(http.MethodGet, "/api/evaluate", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestEvaluateEndpointAuthRequired(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "test-secret-for-auth")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	evaluator, err := pipeline.New(pipeline.Options{
		Embedder:   &stubEmbedder{},
		TrustModel: stubTrustModel{},
		Checker:    stubChecker{},
	})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	s, err := New(evaluator, &cfg)
	require.NoError(t, err)

	// Without a token the endpoint denies.
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", evaluateBody(t))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With a freshly minted token it succeeds.
	token, err := s.jwtService.GenerateToken("reviewer-service")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/api/evaluate", evaluateBody(t))
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open even with auth enabled.
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &stubEmbedder{})

	req := httptest.NewRequest(http.MethodOptions, "/api/evaluate", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestJWTServiceRoundTrip(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("JWT_SECRET", "round-trip-secret")

	cfg, err := config.NewJWTConfig()
	require.NoError(t, err)
	service := NewJWTService(cfg)

	token, err := service.GenerateToken("ops")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.ClientID)

	_, err = service.ValidateToken(token + "tampered")
	assert.Error(t, err)

	_, err = service.ValidateToken("")
	assert.Error(t, err)
}
