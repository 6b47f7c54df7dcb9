package response

import (
	"net/http"

	appctx "github.com/jobtrackr/auth-service/internal/pkg/context"
)

func RequestID(r *http.Request) string {
	if r == nil {
		return ""
	}
	return appctx.GetRequestID(r.Context())
}
