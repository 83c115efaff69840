package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/matching"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/taxonomy"
	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/validation"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidQuery = errors.New("invalid query parameter")
)

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest   = "bad_request"
	codeInvalidBody  = "invalid_request"
	codeInvalidQuery = "invalid_query"
	codeInvalidInput = "invalid_input"
	codeTimeout      = "timeout"
	codeInternal     = "internal"
)

// classify maps an error to its HTTP status and error code. Anything the
// caller can fix by changing the request is a 400.
func classify(err error) (int, string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, codeInvalidBody
	case errors.Is(err, ErrInvalidQuery),
		errors.Is(err, matching.ErrInvalidLimit),
		errors.Is(err, matching.ErrInvalidFilter):
		return http.StatusBadRequest, codeInvalidQuery
	case errors.Is(err, model.ErrScoreOutOfRange),
		errors.Is(err, model.ErrUnknownAction),
		errors.Is(err, taxonomy.ErrUnknownGenre):
		return http.StatusBadRequest, codeInvalidInput
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusInternalServerError, codeTimeout
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
