package server

import (
	"encoding/json"
	"net/http"

	"github.com/segviz/segviz/pkg/errors"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail carries the structured error through to API clients:
// the stable code, a human-readable message, and the offending
// document key path when the loader recorded one.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusForCode(code), errorResponse{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
		Path:    errors.GetPath(err),
	}})
}

// statusForCode maps structured error codes to HTTP status codes.
// Document validation failures map to 422: the request itself was
// well-formed, the manifest it carried is not loadable.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidFigure,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeMalformedDocument,
		errors.ErrCodeMissingRequiredField,
		errors.ErrCodeUnknownTissueRef,
		errors.ErrCodeTypeMismatch,
		errors.ErrCodeDuplicateIndex,
		errors.ErrCodeMissingParameterValue,
		errors.ErrCodeValueOutOfRange,
		errors.ErrCodeUnknownColor:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound,
		errors.ErrCodeSceneNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
