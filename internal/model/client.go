// Package model wraps the learned components of the evaluation: text
// embeddings, the language confidence heuristic, and the trust sequence
// model.
package model

import (
	"context"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// Embedder produces a pooled numeric representation of resume text.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Close releases any resources held by the embedder.
	Close() error
}

// TrustModel predicts the probability that a resume's project history is
// genuine, given the embedding and the extracted features.
type TrustModel interface {
	// Predict returns a trust probability in [0, 1].
	Predict(ctx context.Context, embedding []float32, features types.ResumeFeatures) (float64, error)
}
