package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/trust-evaluator/internal/types"
)

// maxRequestBody bounds the accepted request size. Resume text tops out far
// below this.
const maxRequestBody = 1 << 20

// handleEvaluate runs the evaluation pipeline for a submitted resume.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req types.EvaluateRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.evaluator.Evaluate(r.Context(), &req)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Evaluation failed: %v", err)
			s.errorResponse(w, status, "evaluation failed")
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"evaluator_ready": s.evaluator != nil,
	})
}
