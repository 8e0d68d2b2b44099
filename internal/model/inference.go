package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// HTTPTrustModel calls an external inference service that hosts the trained
// sequence model.
type HTTPTrustModel struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTrustModel creates a client for the inference service at baseURL.
func NewHTTPTrustModel(baseURL string, timeout time.Duration) *HTTPTrustModel {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTrustModel{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Embedding []float32 `json:"embedding"`
	Features  []float64 `json:"features"`
}

type predictResponse struct {
	TrustProbability float64 `json:"trust_probability"`
}

// Predict posts the embedding and feature vector to the inference service.
func (m *HTTPTrustModel) Predict(ctx context.Context, embedding []float32, features types.ResumeFeatures) (float64, error) {
	payload, err := json.Marshal(predictRequest{
		Embedding: embedding,
		Features:  features.Vector(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("inference request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("failed to read inference response: %w", err)
	}

	var out predictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if out.TrustProbability < 0 || out.TrustProbability > 1 || math.IsNaN(out.TrustProbability) {
		return 0, fmt.Errorf("inference service returned probability out of range: %v", out.TrustProbability)
	}
	return out.TrustProbability, nil
}

// HeuristicTrustModel is a deterministic fallback used when no inference
// service is configured. It approximates the trained model with the feature
// signals the model was trained on.
type HeuristicTrustModel struct{}

// Predict combines feature signals into a trust probability.
func (HeuristicTrustModel) Predict(_ context.Context, _ []float32, features types.ResumeFeatures) (float64, error) {
	score := 0.4
	score += 0.3 * features.TechnologyConsistency
	score += 0.15 * features.LinkVerificationRatio

	// Sustained, plausible delivery pace reads as genuine.
	years := math.Max(features.TotalExperienceYears, 0.1)
	pace := float64(features.ProjectCount) / years
	switch {
	case pace <= 4:
		score += 0.15
	case pace <= 8:
		score += 0.05
	case pace >= 12:
		score -= 0.2
	}

	if features.OverlappingProjectCount > 0 && features.ProjectCount > 0 {
		overlapRatio := float64(features.OverlappingProjectCount) / float64(features.ProjectCount)
		score -= 0.3 * math.Min(overlapRatio, 1)
	}

	return clamp01(score), nil
}
