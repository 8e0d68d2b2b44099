package model

import (
	"math"
	"strings"
)

// ConfidenceWeights controls how the confidence components combine. The
// language quality component receives whatever weight the other two leave
// over.
type ConfidenceWeights struct {
	ProfessionalTone    float64
	SemanticConsistency float64
}

// DefaultConfidenceWeights returns the production weighting.
func DefaultConfidenceWeights() ConfidenceWeights {
	return ConfidenceWeights{
		ProfessionalTone:    0.4,
		SemanticConsistency: 0.6,
	}
}

var professionalKeywords = []string{
	"experience", "expertise", "proficient", "skilled", "accomplished",
	"developed", "implemented", "managed", "led", "created", "built",
	"designed", "achieved", "improved", "optimized", "delivered",
	"collaborated", "coordinated", "responsible", "specialized",
	"bachelor", "master", "degree", "certification", "project",
}

var unprofessionalKeywords = []string{
	"kinda", "sorta", "yeah", "nah", "gonna", "wanna",
	"awesome", "cool", "super", "totally", "literally",
}

// Confidence scores how well the text supports reliable language analysis,
// in [0, 1]. It combines language quality, professional tone, and the
// semantic consistency of the embedding.
func Confidence(text string, embedding []float32, weights ConfidenceWeights) float64 {
	quality := languageQuality(text, embedding)
	tone := professionalTone(text)
	consistency := semanticConsistency(embedding)

	residual := 1 - weights.ProfessionalTone - weights.SemanticConsistency
	score := quality*residual + tone*weights.ProfessionalTone + consistency*weights.SemanticConsistency
	return clamp01(score)
}

// languageQuality averages length, vocabulary, sentence structure, and
// embedding magnitude signals.
func languageQuality(text string, embedding []float32) float64 {
	words := strings.Fields(text)
	wordCount := len(words)

	var lengthScore float64
	switch {
	case wordCount < 50:
		lengthScore = 0.3
	case wordCount < 100:
		lengthScore = 0.6
	case wordCount < 500:
		lengthScore = 0.9
	default:
		lengthScore = 0.85
	}

	var vocabScore float64
	if wordCount > 0 {
		unique := make(map[string]struct{}, wordCount)
		for _, w := range words {
			unique[strings.ToLower(w)] = struct{}{}
		}
		vocabScore = math.Min(float64(len(unique))/float64(wordCount)*1.5, 1.0)
	}

	structureScore := sentenceStructureScore(text)

	norm := embeddingNorm(embedding)
	var normScore float64
	switch {
	case norm >= 8 && norm <= 20:
		normScore = 1.0
	case (norm >= 5 && norm < 8) || (norm > 20 && norm <= 25):
		normScore = 0.8
	default:
		normScore = 0.6
	}

	return (lengthScore + vocabScore + structureScore + normScore) / 4
}

func sentenceStructureScore(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 0.5
	}
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	avg := float64(total) / float64(len(sentences))
	switch {
	case avg >= 10 && avg <= 25:
		return 1.0
	case (avg >= 5 && avg < 10) || (avg > 25 && avg <= 35):
		return 0.7
	default:
		return 0.5
	}
}

// professionalTone rewards professional vocabulary and sentence
// capitalization, penalizing casual filler words.
func professionalTone(text string) float64 {
	lower := strings.ToLower(text)

	professionalCount := 0
	for _, keyword := range professionalKeywords {
		if strings.Contains(lower, keyword) {
			professionalCount++
		}
	}
	professionalRatio := math.Min(float64(professionalCount)/10, 1.0)

	unprofessionalCount := 0
	for _, keyword := range unprofessionalKeywords {
		if strings.Contains(lower, keyword) {
			unprofessionalCount++
		}
	}
	penalty := math.Min(float64(unprofessionalCount)*0.1, 0.3)

	capitalization := 0.5
	if sentences := splitSentences(text); len(sentences) > 0 {
		capitalized := 0
		for _, s := range sentences {
			r := []rune(s)
			if len(r) > 0 && r[0] >= 'A' && r[0] <= 'Z' {
				capitalized++
			}
		}
		capitalization = float64(capitalized) / float64(len(sentences))
	}

	return clamp01(professionalRatio*0.5 + capitalization*0.5 - penalty)
}

// semanticConsistency estimates how evenly the embedding mass is spread.
// Scattered, topic-hopping text produces higher component variance and a
// vector whose quarters point in different directions.
func semanticConsistency(embedding []float32) float64 {
	if len(embedding) < 8 {
		return 0.7
	}

	mean := 0.0
	for _, v := range embedding {
		mean += float64(v)
	}
	mean /= float64(len(embedding))
	variance := 0.0
	for _, v := range embedding {
		d := float64(v) - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(embedding)))

	var varianceScore float64
	switch {
	case std < 0.5:
		varianceScore = 1.0
	case std < 1.0:
		varianceScore = 0.8
	default:
		varianceScore = 0.6
	}

	similarityScore := quarterSimilarity(embedding)

	norm := embeddingNorm(embedding)
	var concentrationScore float64
	switch {
	case norm >= 8 && norm <= 20:
		concentrationScore = 1.0
	case (norm >= 5 && norm < 8) || (norm > 20 && norm <= 25):
		concentrationScore = 0.8
	default:
		concentrationScore = 0.6
	}

	return varianceScore*0.3 + similarityScore*0.4 + concentrationScore*0.3
}

// quarterSimilarity averages the pairwise cosine similarity of the four
// quarters of the embedding, clamped to [0, 1].
func quarterSimilarity(embedding []float32) float64 {
	quarter := len(embedding) / 4
	chunks := make([][]float32, 4)
	for i := range chunks {
		chunks[i] = embedding[i*quarter : (i+1)*quarter]
	}

	var sum float64
	var count int
	for i := 0; i < len(chunks); i++ {
		for j := i + 1; j < len(chunks); j++ {
			sum += cosine(chunks[i], chunks[j])
			count++
		}
	}
	if count == 0 {
		return 0.7
	}
	return clamp01(sum / float64(count))
}

func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + 1e-8)
}

func embeddingNorm(embedding []float32) float64 {
	var sum float64
	for _, v := range embedding {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func splitSentences(text string) []string {
	parts := strings.Split(text, ".")
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
