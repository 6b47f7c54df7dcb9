package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jobtrackr/auth-service/internal/domain"
)

type errorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Meta      map[string]string `json:"meta,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// kindStatus maps domain error kinds to transport status codes. Anything
// unmapped is reported as a 500 without leaking internals.
func kindStatus(k domain.ErrKind) int {
	switch k {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteErr renders a domain error as JSON. Non-domain errors are collapsed
// into an opaque internal error so callers never see driver or library text.
func WriteErr(w http.ResponseWriter, r *http.Request, err error, log zerolog.Logger) {
	var de *domain.Error
	if !errors.As(err, &de) {
		de = domain.ErrInternal(err)
	}

	status := kindStatus(de.Kind)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("code", de.Code).Msg("request failed")
	} else {
		log.Debug().Str("code", de.Code).Msg("request rejected")
	}

	body := errorBody{
		Code:      de.Code,
		Message:   de.Message,
		Meta:      de.Meta,
		RequestID: RequestID(r),
	}
	if status == http.StatusInternalServerError {
		body.Message = "internal error"
		body.Meta = nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: body})
}
