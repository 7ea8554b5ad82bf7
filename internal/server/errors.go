package server

import (
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/openopus/ng-pane-manager2-sub000/pkg/errors"
)

// errPreconditionFailed is returned when If-Match names a stale ETag.
var errPreconditionFailed = errors.New("layout has changed")

// statusFor maps an error's class to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, errPreconditionFailed) {
		return http.StatusPreconditionFailed
	}
	if errs.GetCode(err) == errs.ErrCodeTimeout {
		return http.StatusGatewayTimeout
	}
	switch errs.ClassOf(err) {
	case errs.ClassInvalid:
		return http.StatusBadRequest
	case errs.ClassNotFound:
		return http.StatusNotFound
	case errs.ClassRejected:
		return http.StatusUnprocessableEntity
	case errs.ClassUnavailable:
		return http.StatusServiceUnavailable
	case errs.ClassUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Error: errs.UserMessage(err), Code: errs.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
