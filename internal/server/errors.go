package server

import (
	"net/http"

	"github.com/matzehuels/ontograph/pkg/errors"
	pkgio "github.com/matzehuels/ontograph/pkg/io"
)

// errorBody is the JSON body of every non-2xx response.
type errorBody struct {
	Code       errors.Code `json:"code"`
	Message    string      `json:"message"`
	Candidates []string    `json:"candidates,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeUnknownEntity, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeAmbiguousIdentifier:
		return http.StatusConflict
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidExpression:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	body := errorBody{Code: code, Message: errors.UserMessage(err)}
	if amb, ok := errors.AsAmbiguous(err); ok {
		body.Message = "identifier " + amb.Ref + " is ambiguous"
		body.Candidates = amb.Candidates
	}

	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "code", code, "err", err)
	} else {
		s.Logger.Debug("request rejected", "code", code, "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = pkgio.WriteJSON(w, body)
}
