package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/trust-evaluator/internal/validation"
)

// HTTPStatus returns the appropriate HTTP status code for an error from the
// evaluation pipeline. Request problems map to 400; model and upstream
// failures surface as 502 since the evaluator depends on hosted services.
func HTTPStatus(err error) int {
	var reqErr *validation.RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}
