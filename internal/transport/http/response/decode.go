package response

import (
	"encoding/json"
	"net/http"

	"github.com/jobtrackr/auth-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// DecodeJSON fills dst from the request body, rejecting unknown fields and
// oversized payloads.
func DecodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.ErrInvalidJSON(err)
	}
	return nil
}
