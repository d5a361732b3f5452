package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"fpl-insights-service/internal/fplclient"
	"fpl-insights-service/internal/logging"
)

type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logging.FromContext(r.Context()), "encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorBody{
		Error:     message,
		RequestID: requestIDFromContext(r.Context()),
	})
}

// writeUpstreamError maps an upstream client error to an HTTP response,
// preserving the error kind and the user-facing message.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	kind := fplclient.KindOf(err)
	status := statusForKind(kind)

	if apiErr, ok := fplclient.AsAPIError(err); ok && apiErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(apiErr.RetryAfter.Seconds())))
	}

	logging.Warn(logging.FromContext(r.Context()), "upstream error",
		slog.String(logging.FieldErrorKind, string(kind)),
		slog.Int(logging.FieldStatusCode, status),
	)

	writeJSON(w, r, status, errorBody{
		Error:     fplclient.UserMessage(err),
		Kind:      string(kind),
		RequestID: requestIDFromContext(r.Context()),
	})
}

func statusForKind(kind fplclient.Kind) int {
	switch kind {
	case fplclient.KindTimeout:
		return http.StatusGatewayTimeout
	case fplclient.KindRateLimited:
		return http.StatusTooManyRequests
	case fplclient.KindNotFound:
		return http.StatusNotFound
	case fplclient.KindServerUnavailable, fplclient.KindNetworkUnreachable:
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
